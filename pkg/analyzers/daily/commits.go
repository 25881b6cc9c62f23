package daily

import (
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// Commits counts commits per day.
type Commits struct {
	days series[int64]
}

// NewCommits creates an empty commits-per-day aggregator.
func NewCommits() *Commits {
	return &Commits{days: newSeries[int64]()}
}

// Name returns the name of the aggregator.
func (a *Commits) Name() string {
	return "CommitsByDay"
}

// Flag returns the CLI flag for the aggregator.
func (a *Commits) Flag() string {
	return "commits-by-day"
}

// Description returns a human-readable description of the aggregator.
func (a *Commits) Description() string {
	return "Number of commits per calendar day."
}

// Consume counts the commit on its day.
func (a *Commits) Consume(c *commit.Record) {
	*a.days.entry(c.DayKey())++
}

// Finalize emits one row per day, sorted by day.
func (a *Commits) Finalize(m *report.Model) error {
	for day, n := range a.days.days {
		m.CommitsByDay = append(m.CommitsByDay, report.DayCount{Day: day, Commits: *n})
	}

	m.SortDays()

	return nil
}

// SequentialOnly reports false.
func (a *Commits) SequentialOnly() bool { return false }

// Fork returns an empty aggregator.
func (a *Commits) Fork() analyze.Aggregator { return NewCommits() }

// Merge adds the per-day counts of other.
func (a *Commits) Merge(other analyze.Aggregator) {
	if o, ok := other.(*Commits); ok {
		a.days.merge(o.days, func(dst, src *int64) { *dst += *src })
	}
}

// Days returns the number of distinct days seen.
func (a *Commits) Days() int {
	return a.days.len()
}
