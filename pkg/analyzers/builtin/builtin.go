// Package builtin registers the aggregators shipped with gitstats.
package builtin

import (
	"fmt"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/cochange"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/daily"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/extensions"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/messages"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/punchcard"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/summary"
)

// Registrations lists every aggregator in canonical order. The co-change
// detector contributes nothing to the report and is opt-in.
func Registrations() []analyze.Registration {
	return []analyze.Registration{
		{Factory: func() analyze.Aggregator { return summary.New() }, Default: true},
		{Factory: func() analyze.Aggregator { return daily.NewCommits() }, Default: true},
		{Factory: func() analyze.Aggregator { return daily.NewLines() }, Default: true},
		{Factory: func() analyze.Aggregator { return messages.New() }, Default: true},
		{Factory: func() analyze.Aggregator { return daily.NewFiles() }, Default: true},
		{Factory: func() analyze.Aggregator { return punchcard.New() }, Default: true},
		{Factory: func() analyze.Aggregator { return extensions.New() }, Default: true},
		{Factory: func() analyze.Aggregator { return cochange.New() }},
	}
}

// Registry returns the registry of built-in aggregators.
func Registry() *analyze.Registry {
	r, err := analyze.NewRegistry(Registrations()...)
	if err != nil {
		panic(fmt.Sprintf("builtin registry: %v", err))
	}

	return r
}

// DefaultSet returns a fresh default aggregator set.
func DefaultSet() *analyze.Set {
	return Registry().Defaults()
}
