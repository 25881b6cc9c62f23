// Package report holds the report model populated by aggregators and the
// writers that render it.
package report

import (
	"encoding/json"
	"sort"
)

// SummaryRow is one name/value line of the summary table.
type SummaryRow struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// DayCount is the number of commits on one day.
type DayCount struct {
	Day     string `json:"day"     yaml:"day"`
	Commits int64  `json:"commits" yaml:"commits"`
}

// DayLines is the line delta of one day.
type DayLines struct {
	Day     string `json:"day"     yaml:"day"`
	Added   int64  `json:"added"   yaml:"added"`
	Deleted int64  `json:"deleted" yaml:"deleted"`
}

// DayFiles is the file delta of one day.
type DayFiles struct {
	Day      string `json:"day"      yaml:"day"`
	Added    int64  `json:"added"    yaml:"added"`
	Modified int64  `json:"modified" yaml:"modified"`
	Deleted  int64  `json:"deleted"  yaml:"deleted"`
	Renamed  int64  `json:"renamed"  yaml:"renamed"`
}

// PunchCell is one weekday/hour cell of the punch card. Weekday 0 is Sunday.
type PunchCell struct {
	Weekday int   `json:"weekday" yaml:"weekday"`
	Hour    int   `json:"hour"    yaml:"hour"`
	Commits int64 `json:"commits" yaml:"commits"`
}

// JSONItem is one block of the JSON export surface.
type JSONItem struct {
	Key     string          `json:"key"     yaml:"key"`
	Summary []SummaryRow    `json:"summary" yaml:"summary"`
	Data    json.RawMessage `json:"data"    yaml:"data"`
}

// Model accumulates aggregator output. It is created empty, written only
// while aggregators finalize, and read-only afterwards.
type Model struct {
	Summary      []SummaryRow `json:"summary"        yaml:"summary"`
	CommitsByDay []DayCount   `json:"commits_by_day" yaml:"commits_by_day"`
	LinesByDay   []DayLines   `json:"lines_by_day"   yaml:"lines_by_day"`
	FilesByDay   []DayFiles   `json:"files_by_day"   yaml:"files_by_day"`
	Punch        []PunchCell  `json:"punch_card"     yaml:"punch_card"`
	JSON         []JSONItem   `json:"blocks"         yaml:"blocks"`
}

// New creates an empty model.
func New() *Model {
	return &Model{
		Summary:      []SummaryRow{},
		CommitsByDay: []DayCount{},
		LinesByDay:   []DayLines{},
		FilesByDay:   []DayFiles{},
		Punch:        []PunchCell{},
		JSON:         []JSONItem{},
	}
}

// AddSummary appends a summary row. Rows keep push order.
func (m *Model) AddSummary(name, value string) {
	m.Summary = append(m.Summary, SummaryRow{Name: name, Value: value})
}

// AddJSON appends an export block.
func (m *Model) AddJSON(item JSONItem) {
	m.JSON = append(m.JSON, item)
}

// SortDays sorts every day series ascending by day key. Day keys are ISO
// dates, so lexicographic order is chronological.
func (m *Model) SortDays() {
	sort.SliceStable(m.CommitsByDay, func(i, j int) bool { return m.CommitsByDay[i].Day < m.CommitsByDay[j].Day })
	sort.SliceStable(m.LinesByDay, func(i, j int) bool { return m.LinesByDay[i].Day < m.LinesByDay[j].Day })
	sort.SliceStable(m.FilesByDay, func(i, j int) bool { return m.FilesByDay[i].Day < m.FilesByDay[j].Day })
}

// SummaryValue returns the value of the first summary row with the given name.
func (m *Model) SummaryValue(name string) (string, bool) {
	for _, row := range m.Summary {
		if row.Name == name {
			return row.Value, true
		}
	}

	return "", false
}

// Block returns the export block with the given key.
func (m *Model) Block(key string) (JSONItem, bool) {
	for _, item := range m.JSON {
		if item.Key == key {
			return item, true
		}
	}

	return JSONItem{}, false
}
