// Package analyze defines the aggregator contract and the pipeline driver
// that feeds commit records through an ordered aggregator set.
package analyze

import (
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// Aggregator is a stateful commit statistic.
// Consume is called once per commit in supplied order; Finalize is called
// once after the last commit and writes the aggregator's results into the model.
type Aggregator interface {
	// Name is the human-readable name.
	Name() string
	// Flag is the stable selector used on the command line and in config.
	Flag() string
	Description() string

	// Consume folds one commit into the state. Degenerate input (no file
	// operations, empty message) contributes nothing and is never an error.
	Consume(c *commit.Record)

	// Finalize contributes the accumulated state to the model.
	Finalize(m *report.Model) error
}

// Configurable is implemented by aggregators that accept options.
type Configurable interface {
	ListConfigurationOptions() []pipeline.ConfigurationOption
	Configure(facts map[string]any) error
}

// Parallelizable is implemented by aggregators whose state can be split
// over contiguous history partitions and merged back in partition order.
type Parallelizable interface {
	// SequentialOnly reports that the aggregator must see the whole
	// history on a single goroutine even though it can be forked.
	SequentialOnly() bool
	// Fork returns an aggregator with empty state and the same configuration.
	Fork() Aggregator
	// Merge folds the state of a fork that consumed the partition
	// immediately following the receiver's.
	Merge(other Aggregator)
}

// JSONExporter is implemented by aggregators that contribute a block to
// the JSON export surface.
type JSONExporter interface {
	ExportJSON() (report.JSONItem, error)
}
