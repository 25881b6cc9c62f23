package daily

import (
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

type fileDelta struct {
	added    int64
	modified int64
	deleted  int64
	renamed  int64
}

// Files counts file operations by kind per day.
type Files struct {
	days series[fileDelta]
}

// NewFiles creates an empty files-per-day aggregator.
func NewFiles() *Files {
	return &Files{days: newSeries[fileDelta]()}
}

// Name returns the name of the aggregator.
func (a *Files) Name() string {
	return "FilesByDay"
}

// Flag returns the CLI flag for the aggregator.
func (a *Files) Flag() string {
	return "files-by-day"
}

// Description returns a human-readable description of the aggregator.
func (a *Files) Description() string {
	return "Files added, modified, deleted and renamed per calendar day."
}

// Consume adds the commit's file operation counts to its day.
func (a *Files) Consume(c *commit.Record) {
	d := a.days.entry(c.DayKey())
	d.added += c.TotalFilesAdded()
	d.modified += c.TotalFilesModified()
	d.deleted += c.TotalFilesDeleted()
	d.renamed += c.TotalFilesRenamed()
}

// Finalize emits one row per day, sorted by day.
func (a *Files) Finalize(m *report.Model) error {
	for day, d := range a.days.days {
		m.FilesByDay = append(m.FilesByDay, report.DayFiles{
			Day:      day,
			Added:    d.added,
			Modified: d.modified,
			Deleted:  d.deleted,
			Renamed:  d.renamed,
		})
	}

	m.SortDays()

	return nil
}

// SequentialOnly reports false.
func (a *Files) SequentialOnly() bool { return false }

// Fork returns an empty aggregator.
func (a *Files) Fork() analyze.Aggregator { return NewFiles() }

// Merge adds the per-day counts of other.
func (a *Files) Merge(other analyze.Aggregator) {
	o, ok := other.(*Files)
	if !ok {
		return
	}

	a.days.merge(o.days, func(dst, src *fileDelta) {
		dst.added += src.added
		dst.modified += src.modified
		dst.deleted += src.deleted
		dst.renamed += src.renamed
	})
}
