package daily

import (
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

type lineDelta struct {
	added   int64
	deleted int64
}

// Lines sums added and deleted lines per day.
type Lines struct {
	days series[lineDelta]
}

// NewLines creates an empty lines-per-day aggregator.
func NewLines() *Lines {
	return &Lines{days: newSeries[lineDelta]()}
}

// Name returns the name of the aggregator.
func (a *Lines) Name() string {
	return "LinesByDay"
}

// Flag returns the CLI flag for the aggregator.
func (a *Lines) Flag() string {
	return "lines-by-day"
}

// Description returns a human-readable description of the aggregator.
func (a *Lines) Description() string {
	return "Lines added and deleted per calendar day."
}

// Consume adds the commit's line totals to its day.
func (a *Lines) Consume(c *commit.Record) {
	d := a.days.entry(c.DayKey())
	d.added += c.TotalLinesAdded()
	d.deleted += c.TotalLinesDeleted()
}

// Finalize emits one row per day, sorted by day.
func (a *Lines) Finalize(m *report.Model) error {
	for day, d := range a.days.days {
		m.LinesByDay = append(m.LinesByDay, report.DayLines{Day: day, Added: d.added, Deleted: d.deleted})
	}

	m.SortDays()

	return nil
}

// SequentialOnly reports false.
func (a *Lines) SequentialOnly() bool { return false }

// Fork returns an empty aggregator.
func (a *Lines) Fork() analyze.Aggregator { return NewLines() }

// Merge adds the per-day deltas of other.
func (a *Lines) Merge(other analyze.Aggregator) {
	o, ok := other.(*Lines)
	if !ok {
		return
	}

	a.days.merge(o.days, func(dst, src *lineDelta) {
		dst.added += src.added
		dst.deleted += src.deleted
	})
}
