package core

import (
	"encoding/json"
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/internal/utils"
	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

// chartConfig mirrors the subset of the Chart.js configuration object the
// dashboard uses. It is marshalled straight into the page.
type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Type            string  `json:"type,omitempty"`
	Label           string  `json:"label,omitempty"`
	Data            any     `json:"data"`
	BorderColor     any     `json:"borderColor,omitempty"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderWidth     int     `json:"borderWidth,omitempty"`
	Fill            any     `json:"fill,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
	PointRadius     *int    `json:"pointRadius,omitempty"`
	YAxisID         string  `json:"yAxisID,omitempty"`
	Stack           string  `json:"stack,omitempty"`
	// chartjs-chart-geo
	Outline     []json.RawMessage `json:"outline,omitempty"`
	ShowOutline bool              `json:"showOutline,omitempty"`
}

type axisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type gridOptions struct {
	Display         bool `json:"display"`
	DrawOnChartArea bool `json:"drawOnChartArea"`
}

type scale struct {
	Display     *bool        `json:"display,omitempty"`
	Position    string       `json:"position,omitempty"`
	Stacked     bool         `json:"stacked,omitempty"`
	BeginAtZero bool         `json:"beginAtZero,omitempty"`
	Title       *axisTitle   `json:"title,omitempty"`
	Grid        *gridOptions `json:"grid,omitempty"`
	// chartjs-chart-geo
	Axis        string `json:"axis,omitempty"`
	Projection  string `json:"projection,omitempty"`
	Interpolate string `json:"interpolate,omitempty"`
	Quantize    int    `json:"quantize,omitempty"`
}

type legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type plugins struct {
	Legend legend `json:"legend"`
}

type interaction struct {
	Mode      string `json:"mode"`
	Intersect bool   `json:"intersect"`
}

type chartOptions struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	IndexAxis           string           `json:"indexAxis,omitempty"`
	Interaction         *interaction     `json:"interaction,omitempty"`
	Scales              map[string]scale `json:"scales,omitempty"`
	Plugins             plugins          `json:"plugins"`
}

func newOptions() chartOptions {
	return chartOptions{
		Responsive: true,
		Plugins:    plugins{Legend: legend{Display: true, Position: "bottom"}},
	}
}

// chart renders a canvas and the script that draws cfg on it.
func chart(id string, height int, cfg chartConfig) g.Node {
	b, err := json.Marshal(cfg)
	if err != nil {
		utils.Log.WithError(err).WithField("chart", id).Error("Failed to encode chart config")
		return notice("Chart unavailable.")
	}
	return Div(Class("chart relative"), g.Attr("style", fmt.Sprintf("height: %dpx", height)),
		Canvas(ID(id)),
		Script(g.Raw(fmt.Sprintf("new Chart(document.getElementById(%q), %s);", id, b))),
	)
}

func dateLabels(s source.Series) []string {
	labels := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		labels[i] = d.Format(dateFormat)
	}
	return labels
}

// trendChart draws every line of s. Lines on axis 1 get a right-hand y axis, stacked
// lines are drawn as filled areas.
func trendChart(id string, s source.Series) g.Node {
	cfg := chartConfig{
		Type: "line",
		Data: chartData{Labels: dateLabels(s)},
	}
	cfg.Options = newOptions()
	cfg.Options.Interaction = &interaction{Mode: "index", Intersect: false}
	cfg.Options.Scales = map[string]scale{
		"x": {},
		"y": {Position: "left", Title: &axisTitle{Display: s.AxisTitle != "", Text: s.AxisTitle}},
	}

	zero := 0
	for _, l := range s.Lines {
		ds := dataset{
			Label:       l.Label,
			Data:        l.Values,
			BorderColor: l.Color,
			BorderWidth: 2,
			Tension:     0.3,
			PointRadius: &zero,
		}
		if l.Axis == 1 {
			ds.YAxisID = "y1"
			ds.BorderWidth = 1
		}
		if l.Stacked {
			ds.Fill = "origin"
			ds.BackgroundColor = l.Color
			ds.Stack = "total"
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, ds)
	}

	if s.SecondaryAxisTitle != "" {
		cfg.Options.Scales["y1"] = scale{
			Position: "right",
			Title:    &axisTitle{Display: true, Text: s.SecondaryAxisTitle},
			Grid:     &gridOptions{Display: true, DrawOnChartArea: false},
		}
	}
	if len(s.Lines) > 0 && s.Lines[0].Stacked {
		y := cfg.Options.Scales["y"]
		y.Stacked = true
		cfg.Options.Scales["y"] = y
	}
	return chart(id, 320, cfg)
}

// changeOver compares the last value of values against the one back steps earlier.
// When the series is shorter than back it compares against the first value.
func changeOver(values []float64, back int) string {
	if len(values) < 2 {
		return kpi.NotAvailable
	}
	i := len(values) - back
	if i < 0 {
		i = 0
	}
	v, err := kpi.ComputeVariance(values[len(values)-1], values[i])
	if err != nil {
		return kpi.NotAvailable
	}
	return kpi.FormatPercent(v.PercentDelta)
}

// trendAnnotations shows YoY and MoM for every non-companion line on the primary
// axis. YoY compares against the start of the window, MoM against 30 points back.
func trendAnnotations(s source.Series) g.Node {
	items := []g.Node{}
	for _, l := range s.Lines {
		if l.Axis != 0 {
			continue
		}
		items = append(items, Div(Class("annotation text-xs bg-zinc-50 border border-zinc-200 rounded px-2 py-1"),
			Strong(g.Text(l.Label)),
			Span(Class("ml-2"), g.Text("YoY: "+changeOver(l.Values, len(l.Values)))),
			Span(Class("ml-2"), g.Text("MoM: "+changeOver(l.Values, 30))),
		))
	}
	return Div(Class("flex flex-wrap gap-2 mt-3"), g.Group(items))
}

// trendSection renders a selectable trend chart with its annotations.
func (d *Dashboard) trendSection(path string, f Filters, catalog string) g.Node {
	c, err := d.Source.Catalog(catalog)
	if err != nil {
		return section("", notice(err.Error()))
	}
	desc := f.Selected(c)
	s, err := d.Source.Series(source.Selection{Catalog: c.Name, Key: desc.Key}, f.Days())
	if err != nil {
		return section(c.Title, notice(err.Error()))
	}
	children := []g.Node{}
	if len(c.Items) > 1 {
		children = append(children, selector(f, path, c, desc.Key))
	}
	children = append(children, trendChart("trend-"+c.Name, s), trendAnnotations(s))
	return section(c.Title, children...)
}

// donutChart draws a breakdown as a doughnut.
func donutChart(id string, slices []source.Slice) g.Node {
	labels := make([]string, len(slices))
	values := make([]float64, len(slices))
	colors := make([]string, len(slices))
	for i, s := range slices {
		labels[i], values[i], colors[i] = s.Label, s.Value, s.Color
	}
	cfg := chartConfig{
		Type: "doughnut",
		Data: chartData{Labels: labels, Datasets: []dataset{{
			Data:            values,
			BackgroundColor: colors,
			BorderColor:     "#ffffff",
			BorderWidth:     2,
		}}},
		Options: newOptions(),
	}
	return chart(id, 280, cfg)
}

// barChart draws a breakdown as bars, horizontal when horizontal is set.
func barChart(id, label string, slices []source.Slice, horizontal bool) g.Node {
	labels := make([]string, len(slices))
	values := make([]float64, len(slices))
	colors := make([]string, len(slices))
	for i, s := range slices {
		labels[i], values[i], colors[i] = s.Label, s.Value, s.Color
	}
	cfg := chartConfig{
		Type: "bar",
		Data: chartData{Labels: labels, Datasets: []dataset{{
			Label:           label,
			Data:            values,
			BackgroundColor: colors,
		}}},
		Options: newOptions(),
	}
	cfg.Options.Plugins.Legend.Display = false
	if horizontal {
		cfg.Options.IndexAxis = "y"
	}
	return chart(id, 80+30*len(slices), cfg)
}

// breakdownSection renders a named breakdown, degrading to a notice when the source
// does not know it.
func (d *Dashboard) breakdownSection(title, name string, draw func(id string, s []source.Slice) g.Node) g.Node {
	slices, err := d.Source.Breakdown(name)
	if err != nil {
		return section(title, notice(err.Error()))
	}
	return section(title, draw("breakdown-"+name, slices))
}

func donut(id string, s []source.Slice) g.Node { return donutChart(id, s) }

func bars(label string) func(string, []source.Slice) g.Node {
	return func(id string, s []source.Slice) g.Node { return barChart(id, label, s, false) }
}
