// Package messages provides the commit message statistics aggregator.
package messages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

const bytesPerKilo = 1000

// Summary row names, in emission order.
const (
	RowTotalSize  = "Total size of all commit messages"
	RowTotalLines = "Total number of lines across all commit messages"
	RowMaxLines   = "Max number of lines in a commit message"
	RowMaxSize    = "Max size of a commit message"
	RowAvgLines   = "Avg number of lines in a commit message"
	RowAvgSize    = "Avg size of a commit message"
)

// Stats is a snapshot of the running message statistics. Sizes are in bytes.
//
// MinSize and MinLines start at 0 and are only replaced by values <= the
// current minimum, so they stay 0 for any history of non-empty messages.
// They are kept for compatibility with existing reports and are not emitted.
type Stats struct {
	Count      int64
	TotalSize  int64
	TotalLines int64
	MaxSize    int64
	MaxLines   int64
	MinSize    int64
	MinLines   int64
	AvgSize    int64
	AvgLines   int64
}

// Aggregator tracks commit message sizes and line counts.
type Aggregator struct {
	stats Stats
}

// New creates an empty message statistics aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Name returns the name of the aggregator.
func (a *Aggregator) Name() string {
	return "Messages"
}

// Flag returns the CLI flag for the aggregator.
func (a *Aggregator) Flag() string {
	return "messages"
}

// Description returns a human-readable description of the aggregator.
func (a *Aggregator) Description() string {
	return "Size and line count distribution of commit messages."
}

// Consume folds one commit message into the statistics.
func (a *Aggregator) Consume(c *commit.Record) {
	size, lines := c.MessageSize(), c.MessageLines()
	s := &a.stats

	s.Count++
	s.TotalSize += size
	s.TotalLines += lines

	if size > s.MaxSize {
		s.MaxSize = size
	}

	if lines > s.MaxLines {
		s.MaxLines = lines
	}

	if size <= s.MinSize {
		s.MinSize = size
	}

	if lines <= s.MinLines {
		s.MinLines = lines
	}

	s.recomputeAverages()
}

func (s *Stats) recomputeAverages() {
	if s.Count == 0 {
		s.AvgSize, s.AvgLines = 0, 0

		return
	}

	s.AvgSize = s.TotalSize / s.Count
	s.AvgLines = s.TotalLines / s.Count
}

// Finalize pushes the message summary rows.
func (a *Aggregator) Finalize(m *report.Model) error {
	s := a.stats

	m.AddSummary(RowTotalSize, humanBytes(s.TotalSize))
	m.AddSummary(RowTotalLines, strconv.FormatInt(s.TotalLines, 10))
	m.AddSummary(RowMaxLines, strconv.FormatInt(s.MaxLines, 10))
	m.AddSummary(RowMaxSize, humanBytes(s.MaxSize))
	m.AddSummary(RowAvgLines, strconv.FormatInt(s.AvgLines, 10))
	m.AddSummary(RowAvgSize, humanBytes(s.AvgSize))

	return nil
}

// humanBytes renders n in decimal units with one fractional digit and an
// upper-case prefix, e.g. "999 B", "1.5 KB", "15.0 KB".
func humanBytes(n int64) string {
	if n < bytesPerKilo {
		return strconv.FormatInt(n, 10) + " B"
	}

	value, prefix := humanize.ComputeSI(float64(n))

	return fmt.Sprintf("%.1f %sB", value, strings.ToUpper(prefix))
}

// Stats returns the current statistics.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// SequentialOnly reports false.
func (a *Aggregator) SequentialOnly() bool { return false }

// Fork returns an empty aggregator.
func (a *Aggregator) Fork() analyze.Aggregator { return New() }

// Merge combines the statistics of other using the same comparison rules
// as Consume.
func (a *Aggregator) Merge(other analyze.Aggregator) {
	o, ok := other.(*Aggregator)
	if !ok {
		return
	}

	s, os := &a.stats, o.stats

	s.Count += os.Count
	s.TotalSize += os.TotalSize
	s.TotalLines += os.TotalLines
	s.MaxSize = max(s.MaxSize, os.MaxSize)
	s.MaxLines = max(s.MaxLines, os.MaxLines)

	if os.MinSize <= s.MinSize {
		s.MinSize = os.MinSize
	}

	if os.MinLines <= s.MinLines {
		s.MinLines = os.MinLines
	}

	s.recomputeAverages()
}
