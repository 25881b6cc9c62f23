package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TextOptions controls text rendering.
type TextOptions struct {
	NoColor bool
}

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WriteText renders the model as terminal tables.
func WriteText(m *Model, writer io.Writer, opts TextOptions) error {
	heading := color.New(color.FgBlue, color.Bold)
	if opts.NoColor {
		heading.DisableColor()
	}

	sections := []struct {
		title string
		empty bool
		build func() table.Writer
	}{
		{"Summary", len(m.Summary) == 0, func() table.Writer { return summaryTable(m.Summary) }},
		{"Commits by day", len(m.CommitsByDay) == 0, func() table.Writer { return commitsTable(m.CommitsByDay) }},
		{"Lines by day", len(m.LinesByDay) == 0, func() table.Writer { return linesTable(m.LinesByDay) }},
		{"Files by day", len(m.FilesByDay) == 0, func() table.Writer { return filesTable(m.FilesByDay) }},
		{"Punch card", len(m.Punch) == 0, func() table.Writer { return punchTable(m.Punch) }},
	}

	for _, section := range sections {
		if section.empty {
			continue
		}

		_, err := heading.Fprintln(writer, section.title)
		if err != nil {
			return fmt.Errorf("write heading: %w", err)
		}

		_, err = fmt.Fprintf(writer, "%s\n\n", section.build().Render())
		if err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}

	for _, item := range m.JSON {
		_, err := heading.Fprintln(writer, item.Key)
		if err != nil {
			return fmt.Errorf("write heading: %w", err)
		}

		_, err = fmt.Fprintf(writer, "%s\n\n", blockTable(item).Render())
		if err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}

	return nil
}

func newTable(header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendHeader(header)

	return tbl
}

func summaryTable(rows []SummaryRow) table.Writer {
	tbl := newTable("Name", "Value")
	for _, row := range rows {
		tbl.AppendRow(table.Row{row.Name, row.Value})
	}

	return tbl
}

func commitsTable(rows []DayCount) table.Writer {
	tbl := newTable("Day", "Commits")
	for _, row := range rows {
		tbl.AppendRow(table.Row{row.Day, row.Commits})
	}

	return tbl
}

func linesTable(rows []DayLines) table.Writer {
	tbl := newTable("Day", "Added", "Deleted")
	for _, row := range rows {
		tbl.AppendRow(table.Row{row.Day, row.Added, row.Deleted})
	}

	return tbl
}

func filesTable(rows []DayFiles) table.Writer {
	tbl := newTable("Day", "Added", "Modified", "Deleted", "Renamed")
	for _, row := range rows {
		tbl.AppendRow(table.Row{row.Day, row.Added, row.Modified, row.Deleted, row.Renamed})
	}

	return tbl
}

// punchTable sorts a copy of the cells for display; the model itself keeps
// aggregator order.
func punchTable(cells []PunchCell) table.Writer {
	sorted := make([]PunchCell, len(cells))
	copy(sorted, cells)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}

		return sorted[i].Hour < sorted[j].Hour
	})

	tbl := newTable("Weekday", "Hour", "Commits")
	for _, cell := range sorted {
		tbl.AppendRow(table.Row{weekdayName(cell.Weekday), fmt.Sprintf("%02d", cell.Hour), cell.Commits})
	}

	return tbl
}

// blockTable renders histogram blocks as name/value rows sorted by value
// descending; other payloads are shown as raw JSON.
func blockTable(item JSONItem) table.Writer {
	var pairs []NameValue

	err := json.Unmarshal(item.Data, &pairs)
	if err != nil {
		tbl := newTable("Data")
		tbl.AppendRow(table.Row{string(item.Data)})

		return tbl
	}

	SortNameValues(pairs)

	tbl := newTable("Name", "Value")
	for _, p := range pairs {
		tbl.AppendRow(table.Row{displayName(p.Name), p.Value})
	}

	return tbl
}

// SortNameValues orders pairs by value descending, then name ascending.
func SortNameValues(pairs []NameValue) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Value != pairs[j].Value {
			return pairs[i].Value > pairs[j].Value
		}

		return pairs[i].Name < pairs[j].Name
	})
}

func weekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return strconv.Itoa(day)
	}

	return weekdayNames[day]
}

func displayName(name string) string {
	if name == "" {
		return "(none)"
	}

	return name
}
