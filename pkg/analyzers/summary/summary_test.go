package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/summary"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit"
	"github.com/Sumatoshi-tech/gitstats/pkg/commit/committest"
	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

func consume(a *summary.Aggregator, records []*commit.Record) {
	for _, r := range records {
		a.Consume(r)
	}
}

func TestAggregator_Scenario(t *testing.T) {
	t.Parallel()

	a := summary.New()
	consume(a, committest.Scenario())

	m := report.New()
	require.NoError(t, a.Finalize(m))

	assert.Equal(t, []report.SummaryRow{
		{Name: summary.RowFirstCommitter, Value: "Alice"},
		{Name: summary.RowFirstCommitDate, Value: "2024-01-01 10:00:00 +00:00"},
		{Name: summary.RowNumberOfCommits, Value: "3"},
		{Name: summary.RowTotalLinesAdded, Value: "15"},
		{Name: summary.RowTotalLinesDeleted, Value: "5"},
	}, m.Summary)
}

func TestAggregator_FirstFollowsSuppliedOrder(t *testing.T) {
	t.Parallel()

	records := committest.Scenario()
	later, earlier := records[2], records[0]

	a := summary.New()
	consume(a, []*commit.Record{later, earlier})

	author, when, ok := a.First()
	require.True(t, ok)
	assert.Equal(t, "Carl", author)
	assert.Equal(t, committest.Day3, when)
}

func TestAggregator_CountsAndSums(t *testing.T) {
	t.Parallel()

	records := committest.Random(7, 200)

	var added, deleted int64

	for _, r := range records {
		added += r.TotalLinesAdded()
		deleted += r.TotalLinesDeleted()
	}

	forward := summary.New()
	consume(forward, records)

	reversed := summary.New()
	for i := len(records) - 1; i >= 0; i-- {
		reversed.Consume(records[i])
	}

	assert.Equal(t, int64(len(records)), forward.Commits())
	assert.Equal(t, added, forward.LinesAdded())
	assert.Equal(t, deleted, forward.LinesDeleted())
	assert.Equal(t, forward.LinesAdded(), reversed.LinesAdded())
	assert.Equal(t, forward.LinesDeleted(), reversed.LinesDeleted())
}

func TestAggregator_Empty(t *testing.T) {
	t.Parallel()

	m := report.New()
	require.NoError(t, summary.New().Finalize(m))

	value, ok := m.SummaryValue(summary.RowNumberOfCommits)
	require.True(t, ok)
	assert.Equal(t, "0", value)

	value, _ = m.SummaryValue(summary.RowFirstCommitter)
	assert.Empty(t, value)
}

func TestAggregator_Merge(t *testing.T) {
	t.Parallel()

	records := committest.Scenario()

	whole := summary.New()
	consume(whole, records)

	head := summary.New()
	consume(head, records[:1])

	tail, ok := head.Fork().(*summary.Aggregator)
	require.True(t, ok)
	consume(tail, records[1:])

	head.Merge(tail)

	assert.Equal(t, whole.Commits(), head.Commits())
	assert.Equal(t, whole.LinesAdded(), head.LinesAdded())

	author, _, _ := head.First()
	assert.Equal(t, "Alice", author)

	empty := summary.New()
	empty.Merge(head)

	author, _, ok = empty.First()
	assert.True(t, ok)
	assert.Equal(t, "Alice", author)
}
