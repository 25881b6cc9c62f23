// Package cochange provides a detector for file sets that change together
// within a trailing window of recent commits.
package cochange

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/gitstats/pkg/alg/lsh"
	"github.com/Sumatoshi-tech/gitstats/pkg/alg/minhash"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
	"github.com/Sumatoshi-tech/gitstats/pkg/safeconv"
)

const (
	// AggregatorFlag is the selection flag of the detector.
	AggregatorFlag = "cochange"

	// ConfigWindow is the fact key of the window size.
	ConfigWindow = "CoChange.Window"

	// DefaultWindow is the number of trailing commits kept.
	DefaultWindow = 10

	numBands = 16
	numRows  = 4
)

// ErrInvalidWindow is returned for a non-numeric or non-positive window.
var ErrInvalidWindow = errors.New("co-change window must be a positive integer")

// Match is a windowed commit whose file set resembles the query.
type Match struct {
	Hash       string
	Paths      []string
	Similarity float64
}

type entry struct {
	id    uint64
	hash  string
	paths []string
	sig   *minhash.Signature
}

// Detector keeps MinHash signatures of the file sets of the last Window
// commits in an LSH index. Commits without file operations are skipped.
// It contributes nothing to the report.
type Detector struct {
	Window int

	hasher *minhash.Hasher
	index  *lsh.Index
	ring   []entry
	nextID uint64
}

// New creates a detector with the default window.
func New() *Detector {
	d := &Detector{Window: DefaultWindow}
	d.reset()

	return d
}

func (d *Detector) reset() {
	hasher, err := minhash.NewHasher(numBands * numRows)
	if err != nil {
		panic(fmt.Sprintf("cochange: %v", err))
	}

	index, err := lsh.New(numBands, numRows)
	if err != nil {
		panic(fmt.Sprintf("cochange: %v", err))
	}

	d.hasher = hasher
	d.index = index
	d.ring = d.ring[:0]
	d.nextID = 0
}

// Name returns the name of the aggregator.
func (d *Detector) Name() string {
	return "CoChange"
}

// Flag returns the CLI flag for the aggregator.
func (d *Detector) Flag() string {
	return AggregatorFlag
}

// Description returns a human-readable description of the aggregator.
func (d *Detector) Description() string {
	return "Tracks file sets changed together within a trailing window of commits."
}

// ListConfigurationOptions returns the configuration options for the detector.
func (d *Detector) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{{
		Name:        ConfigWindow,
		Description: "Number of trailing commits compared against each other.",
		Flag:        "cochange-window",
		Type:        pipeline.IntConfigurationOption,
		Default:     DefaultWindow,
	}}
}

// Configure sets up the detector with the provided facts.
func (d *Detector) Configure(facts map[string]any) error {
	raw, exists := facts[ConfigWindow]
	if !exists {
		return nil
	}

	window, ok := safeconv.ToInt(raw)
	if !ok || window <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, raw)
	}

	d.Window = window
	d.evict()

	return nil
}

// Consume adds the commit's file set to the window, evicting the oldest
// entry when the window is full.
func (d *Detector) Consume(c *commit.Record) {
	paths := c.FilePaths()
	if len(paths) == 0 {
		return
	}

	d.push(entry{hash: c.Hash, paths: paths, sig: d.hasher.Sign(paths)})
}

func (d *Detector) push(e entry) {
	e.id = d.nextID
	d.nextID++

	err := d.index.Insert(e.id, e.sig)
	if err != nil {
		panic(fmt.Sprintf("cochange: %v", err))
	}

	d.ring = append(d.ring, e)
	d.evict()
}

func (d *Detector) evict() {
	if len(d.ring) <= d.Window {
		return
	}

	drop := len(d.ring) - d.Window
	for _, e := range d.ring[:drop] {
		d.index.Remove(e.id)
	}

	d.ring = append(d.ring[:0], d.ring[drop:]...)
}

// Len returns the number of commits currently in the window.
func (d *Detector) Len() int {
	return len(d.ring)
}

// Similar returns the windowed commits whose file sets have an estimated
// Jaccard similarity of at least threshold with paths, most similar first.
func (d *Detector) Similar(paths []string, threshold float64) ([]Match, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	found, err := d.index.QueryThreshold(d.hasher.Sign(paths), threshold)
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}

	byID := make(map[uint64]entry, len(d.ring))
	for _, e := range d.ring {
		byID[e.id] = e
	}

	matches := make([]Match, 0, len(found))
	for _, m := range found {
		e := byID[m.ID]
		matches = append(matches, Match{Hash: e.hash, Paths: e.paths, Similarity: m.Similarity})
	}

	return matches, nil
}

// Finalize contributes nothing.
func (d *Detector) Finalize(_ *report.Model) error {
	return nil
}

// SequentialOnly reports true: the window depends on the global order.
func (d *Detector) SequentialOnly() bool {
	return true
}

// Fork returns an empty detector with the same window.
func (d *Detector) Fork() analyze.Aggregator {
	fork := New()
	fork.Window = d.Window

	return fork
}

// Merge appends the window of a detector that consumed the following
// partition, keeping the last Window entries overall.
func (d *Detector) Merge(other analyze.Aggregator) {
	o, ok := other.(*Detector)
	if !ok {
		return
	}

	for _, e := range o.ring {
		d.push(entry{hash: e.hash, paths: e.paths, sig: e.sig})
	}
}
