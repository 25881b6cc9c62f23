// Package punchcard provides the weekday by hour commit matrix aggregator.
package punchcard

import (
	"cmp"
	"slices"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

type cell struct {
	weekday int
	hour    int
	commits int64
}

// Aggregator counts commits per (weekday, hour) cell in the commit's own
// time zone. Weekday 0 is Sunday.
type Aggregator struct {
	cells map[string]*cell
}

// New creates an empty punch card aggregator.
func New() *Aggregator {
	return &Aggregator{cells: map[string]*cell{}}
}

// Name returns the name of the aggregator.
func (a *Aggregator) Name() string {
	return "PunchCard"
}

// Flag returns the CLI flag for the aggregator.
func (a *Aggregator) Flag() string {
	return "punch-card"
}

// Description returns a human-readable description of the aggregator.
func (a *Aggregator) Description() string {
	return "Commits per weekday and hour of day."
}

// Consume counts the commit in its weekday/hour cell.
func (a *Aggregator) Consume(c *commit.Record) {
	key := c.WeekdayHourKey()

	bucket, ok := a.cells[key]
	if !ok {
		bucket = &cell{weekday: c.Weekday(), hour: c.Hour()}
		a.cells[key] = bucket
	}

	bucket.commits++
}

// Finalize emits one row per populated cell, ordered by weekday then hour.
func (a *Aggregator) Finalize(m *report.Model) error {
	start := len(m.Punch)

	for _, c := range a.cells {
		m.Punch = append(m.Punch, report.PunchCell{Weekday: c.weekday, Hour: c.hour, Commits: c.commits})
	}

	slices.SortFunc(m.Punch[start:], func(x, y report.PunchCell) int {
		return cmp.Or(cmp.Compare(x.Weekday, y.Weekday), cmp.Compare(x.Hour, y.Hour))
	})

	return nil
}

// SequentialOnly reports false.
func (a *Aggregator) SequentialOnly() bool { return false }

// Fork returns an empty aggregator.
func (a *Aggregator) Fork() analyze.Aggregator { return New() }

// Merge adds the cell counts of other.
func (a *Aggregator) Merge(other analyze.Aggregator) {
	o, ok := other.(*Aggregator)
	if !ok {
		return
	}

	for key, src := range o.cells {
		dst, exists := a.cells[key]
		if !exists {
			dst = &cell{weekday: src.weekday, hour: src.hour}
			a.cells[key] = dst
		}

		dst.commits += src.commits
	}
}
