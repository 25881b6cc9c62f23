// Package summary provides the repository-wide totals aggregator.
package summary

import (
	"strconv"
	"time"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

// Summary row names, in emission order.
const (
	RowFirstCommitter    = "First committer"
	RowFirstCommitDate   = "Date of first commit"
	RowNumberOfCommits   = "Number of commits"
	RowTotalLinesAdded   = "Total lines added"
	RowTotalLinesDeleted = "Total lines deleted"
)

// Aggregator counts commits and line totals and remembers the first
// commit it observed. "First" follows the supplied order: with a
// newest-first history it is the most recent commit.
type Aggregator struct {
	firstSet     bool
	firstAuthor  string
	firstWhen    time.Time
	commits      int64
	linesAdded   int64
	linesDeleted int64
}

// New creates an empty summary aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Name returns the name of the aggregator.
func (a *Aggregator) Name() string {
	return "Summary"
}

// Flag returns the CLI flag for the aggregator.
func (a *Aggregator) Flag() string {
	return "summary"
}

// Description returns a human-readable description of the aggregator.
func (a *Aggregator) Description() string {
	return "Commit count, line totals and the first commit of the history."
}

// Consume folds one commit into the totals.
func (a *Aggregator) Consume(c *commit.Record) {
	if !a.firstSet {
		a.firstSet = true
		a.firstAuthor = c.Author
		a.firstWhen = c.When
	}

	a.commits++
	a.linesAdded += c.TotalLinesAdded()
	a.linesDeleted += c.TotalLinesDeleted()
}

// Finalize pushes the summary rows.
func (a *Aggregator) Finalize(m *report.Model) error {
	date := ""
	if a.firstSet {
		date = a.firstWhen.Format(commit.DateLayout)
	}

	m.AddSummary(RowFirstCommitter, a.firstAuthor)
	m.AddSummary(RowFirstCommitDate, date)
	m.AddSummary(RowNumberOfCommits, strconv.FormatInt(a.commits, 10))
	m.AddSummary(RowTotalLinesAdded, strconv.FormatInt(a.linesAdded, 10))
	m.AddSummary(RowTotalLinesDeleted, strconv.FormatInt(a.linesDeleted, 10))

	return nil
}

// SequentialOnly reports false: partitions merged in order keep the first commit.
func (a *Aggregator) SequentialOnly() bool {
	return false
}

// Fork returns an empty aggregator.
func (a *Aggregator) Fork() analyze.Aggregator {
	return New()
}

// Merge adds the totals of a fork that consumed the following partition.
// The first commit is kept from the receiver when it has one.
func (a *Aggregator) Merge(other analyze.Aggregator) {
	o, ok := other.(*Aggregator)
	if !ok {
		return
	}

	if !a.firstSet && o.firstSet {
		a.firstSet = true
		a.firstAuthor = o.firstAuthor
		a.firstWhen = o.firstWhen
	}

	a.commits += o.commits
	a.linesAdded += o.linesAdded
	a.linesDeleted += o.linesDeleted
}

// Commits returns the number of commits consumed.
func (a *Aggregator) Commits() int64 {
	return a.commits
}

// LinesAdded returns the total number of added lines.
func (a *Aggregator) LinesAdded() int64 {
	return a.linesAdded
}

// LinesDeleted returns the total number of deleted lines.
func (a *Aggregator) LinesDeleted() int64 {
	return a.linesDeleted
}

// First returns the author and time of the first consumed commit.
func (a *Aggregator) First() (author string, when time.Time, ok bool) {
	return a.firstAuthor, a.firstWhen, a.firstSet
}
