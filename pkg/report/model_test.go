package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	m := report.New()

	assert.NotNil(t, m.Summary)
	assert.NotNil(t, m.CommitsByDay)
	assert.Empty(t, m.Summary)
	assert.Empty(t, m.Punch)
	assert.Empty(t, m.JSON)
}

func TestModel_AddSummaryKeepsOrder(t *testing.T) {
	t.Parallel()

	m := report.New()
	m.AddSummary("b", "2")
	m.AddSummary("a", "1")

	require.Len(t, m.Summary, 2)
	assert.Equal(t, "b", m.Summary[0].Name)
	assert.Equal(t, "a", m.Summary[1].Name)

	value, ok := m.SummaryValue("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	_, ok = m.SummaryValue("missing")
	assert.False(t, ok)
}

func TestModel_SortDays(t *testing.T) {
	t.Parallel()

	m := report.New()
	m.CommitsByDay = []report.DayCount{{Day: "2024-03-02", Commits: 1}, {Day: "2023-12-31", Commits: 2}, {Day: "2024-01-15", Commits: 3}}
	m.LinesByDay = []report.DayLines{{Day: "2024-02-01"}, {Day: "2024-01-01"}}
	m.FilesByDay = []report.DayFiles{{Day: "2024-05-01"}, {Day: "2024-04-01"}}

	m.SortDays()

	days := make([]string, 0, len(m.CommitsByDay))
	for _, row := range m.CommitsByDay {
		days = append(days, row.Day)
	}

	assert.Equal(t, []string{"2023-12-31", "2024-01-15", "2024-03-02"}, days)
	assert.Equal(t, "2024-01-01", m.LinesByDay[0].Day)
	assert.Equal(t, "2024-04-01", m.FilesByDay[0].Day)
}

func TestModel_Block(t *testing.T) {
	t.Parallel()

	m := report.New()

	item, err := report.NewJSONItem("files_by_extension", nil, []report.NameValue{{Name: "rs", Value: 4}})
	require.NoError(t, err)

	m.AddJSON(item)

	got, ok := m.Block("files_by_extension")
	require.True(t, ok)
	assert.NotNil(t, got.Summary)
	assert.JSONEq(t, `[{"name":"rs","value":4}]`, string(got.Data))

	_, ok = m.Block("nope")
	assert.False(t, ok)
}
