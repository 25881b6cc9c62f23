package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	fullZoomPct     = 100
	hoursPerDay     = 24
	maxPieSlices    = 12
	punchCardHeight = "400px"
	pieRadius       = "60%"
	otherSliceName  = "other"
	stackTotal      = "total"
	chartPageTitle  = "Repository statistics"
	extensionsKey   = "files_by_extension"
)

// WritePlot renders the model as an interactive HTML page.
func WritePlot(m *Model, writer io.Writer) error {
	page := components.NewPage()
	page.PageTitle = chartPageTitle
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		commitsChart(m.CommitsByDay),
		linesChart(m.LinesByDay),
		filesChart(m.FilesByDay),
		punchCardChart(m.Punch),
	)

	if item, ok := m.Block(extensionsKey); ok {
		pie, err := extensionsChart(item)
		if err != nil {
			return err
		}

		page.AddCharts(pie)
	}

	err := page.Render(writer)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

func baseOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "5px", Left: "40%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
	}
}

func commitsChart(rows []DayCount) *charts.Line {
	days := make([]string, len(rows))
	data := make([]opts.LineData, len(rows))

	for i, row := range rows {
		days[i] = row.Day
		data[i] = opts.LineData{Value: row.Commits}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(baseOpts("Commits", "Commits per day")...)
	line.SetXAxis(days).AddSeries("commits", data)

	return line
}

func linesChart(rows []DayLines) *charts.Bar {
	days := make([]string, len(rows))
	added := make([]opts.BarData, len(rows))
	deleted := make([]opts.BarData, len(rows))

	for i, row := range rows {
		days[i] = row.Day
		added[i] = opts.BarData{Value: row.Added}
		deleted[i] = opts.BarData{Value: -row.Deleted}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Lines", "Lines added and deleted per day")...)
	bar.SetXAxis(days).
		AddSeries("added", added, charts.WithBarChartOpts(opts.BarChart{Stack: stackTotal})).
		AddSeries("deleted", deleted, charts.WithBarChartOpts(opts.BarChart{Stack: stackTotal}))

	return bar
}

func filesChart(rows []DayFiles) *charts.Bar {
	days := make([]string, len(rows))
	series := map[string][]opts.BarData{}
	names := []string{"added", "modified", "deleted", "renamed"}

	for _, name := range names {
		series[name] = make([]opts.BarData, len(rows))
	}

	for i, row := range rows {
		days[i] = row.Day
		series["added"][i] = opts.BarData{Value: row.Added}
		series["modified"][i] = opts.BarData{Value: row.Modified}
		series["deleted"][i] = opts.BarData{Value: row.Deleted}
		series["renamed"][i] = opts.BarData{Value: row.Renamed}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Files", "File operations per day")...)
	bar.SetXAxis(days)

	for _, name := range names {
		bar.AddSeries(name, series[name], charts.WithBarChartOpts(opts.BarChart{Stack: stackTotal}))
	}

	return bar
}

func punchCardChart(cells []PunchCell) *charts.HeatMap {
	hours := make([]string, hoursPerDay)
	for h := range hoursPerDay {
		hours[h] = fmt.Sprintf("%02d", h)
	}

	data := make([]opts.HeatMapData, 0, len(cells))

	var maxVal int64

	for _, cell := range cells {
		data = append(data, opts.HeatMapData{Value: []any{cell.Hour, cell.Weekday, cell.Commits}})
		maxVal = max(maxVal, cell.Commits)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Punch card", Subtitle: "Commits by weekday and hour"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Height: punchCardHeight}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: hours, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: weekdayNames[:], SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: 0, Max: float32(maxVal),
			InRange: &opts.VisualMapInRange{Color: []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}},
			Orient:  "horizontal", Left: "center", Bottom: "2%",
		}),
	)
	hm.AddSeries("commits", data)

	return hm
}

func extensionsChart(item JSONItem) (*charts.Pie, error) {
	var pairs []NameValue

	err := json.Unmarshal(item.Data, &pairs)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", item.Key, err)
	}

	SortNameValues(pairs)

	data := make([]opts.PieData, 0, min(len(pairs), maxPieSlices+1))

	var rest int64

	for i, p := range pairs {
		if i >= maxPieSlices {
			rest += p.Value

			continue
		}

		data = append(data, opts.PieData{Name: displayName(p.Name), Value: p.Value})
	}

	if rest > 0 {
		data = append(data, opts.PieData{Name: otherSliceName, Value: rest})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Files by extension", Subtitle: "File operations per extension"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)
	pie.AddSeries("extensions", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
	)

	return pie, nil
}
