package core

import (
	"encoding/json"
	"sort"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/internal/utils"
	"github.com/sdboard/sdboard/pkg/assets"
	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

const mapFallbackNotice = "Map visualization requires a region boundary file (assets.geojson). Displaying bar chart instead."

// RegionStats summarises a regional metric.
type RegionStats struct {
	Top     source.RegionValue
	Lowest  source.RegionValue
	Total   float64
	Average float64
}

// SummarizeRegions computes the top, lowest, total and average. Ties keep the first
// region in order. ok is false when there are no values.
func SummarizeRegions(values []source.RegionValue) (stats RegionStats, ok bool) {
	if len(values) == 0 {
		return RegionStats{}, false
	}
	stats.Top, stats.Lowest = values[0], values[0]
	for _, v := range values {
		stats.Total += v.Value
		if v.Value > stats.Top.Value {
			stats.Top = v
		}
		if v.Value < stats.Lowest.Value {
			stats.Lowest = v
		}
	}
	stats.Average = stats.Total / float64(len(values))
	return stats, true
}

func regionFigure(v float64, unit string) string {
	if unit == "" {
		return kpi.FormatCount(v)
	}
	return withUnit(kpi.FormatFixed(v, 1), unit)
}

func regionStat(label, title, value string) g.Node {
	return Div(Class("region-stat bg-zinc-50 border border-zinc-200 rounded-lg p-3 text-center"),
		Div(Class("text-[10px] uppercase tracking-wider text-zinc-500 font-semibold"), g.Text(label)),
		g.If(title != "", Div(Class("text-sm font-bold text-zinc-900"), g.Text(title))),
		Div(Class("text-lg font-extrabold tabular-nums text-zinc-900"), g.Text(value)),
	)
}

func regionStats(r source.Regional, selected string) g.Node {
	stats, ok := SummarizeRegions(r.Values)
	if !ok {
		return notice("No regional data.")
	}
	cells := []g.Node{
		regionStat("Top Region", stats.Top.Region, regionFigure(stats.Top.Value, r.Unit)),
		regionStat("Average", "Across "+kpi.FormatCount(float64(len(r.Values)))+" regions", regionFigure(stats.Average, r.Unit)),
		regionStat("Total", "", regionFigure(stats.Total, r.Unit)),
		regionStat("Lowest", stats.Lowest.Region, regionFigure(stats.Lowest.Value, r.Unit)),
	}
	for _, v := range r.Values {
		if v.Region == selected {
			cells = append(cells, regionStat("Selected Region", v.Region, regionFigure(v.Value, r.Unit)))
		}
	}
	return Div(ID("region-stats"), Class("grid grid-cols-2 md:grid-cols-5 gap-3 mt-4"), g.Group(cells))
}

type geoPoint struct {
	Feature json.RawMessage `json:"feature"`
	Value   float64         `json:"value"`
}

// choropleth colours each region's outline by its value. Regions without a
// matching feature are left out of the map.
func choropleth(id string, b *assets.Boundaries, r source.Regional) (g.Node, []string) {
	outline := make([]json.RawMessage, len(b.Features))
	for i, f := range b.Features {
		outline[i] = json.RawMessage(f.Raw)
	}

	var labels []string
	var points []geoPoint
	var missing []string
	for _, v := range r.Values {
		f, ok := b.Lookup(v.Region)
		if !ok {
			missing = append(missing, v.Region)
			continue
		}
		labels = append(labels, v.Region)
		points = append(points, geoPoint{Feature: json.RawMessage(f.Raw), Value: v.Value})
	}

	cfg := chartConfig{
		Type: "choropleth",
		Data: chartData{Labels: labels, Datasets: []dataset{{
			Label:       r.Label,
			Data:        points,
			Outline:     outline,
			ShowOutline: true,
		}}},
		Options: newOptions(),
	}
	cfg.Options.Plugins.Legend.Display = false
	cfg.Options.Scales = map[string]scale{
		"projection": {Axis: "x", Projection: "mercator"},
		"color":      {Axis: "x", Interpolate: "ylOrBr", Quantize: 6},
	}
	return chart(id, 420, cfg), missing
}

// regionBars is the fallback when no boundaries are loaded.
func regionBars(id string, r source.Regional) g.Node {
	sorted := append([]source.RegionValue(nil), r.Values...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	slices := make([]source.Slice, len(sorted))
	for i, v := range sorted {
		slices[i] = source.Slice{Label: v.Region, Value: v.Value, Color: source.Yellow}
	}
	return barChart(id, r.Label, slices, true)
}

// regionalSection renders the map for the selected KPI of catalog.
func (d *Dashboard) regionalSection(path string, f Filters, catalog string) g.Node {
	c, err := d.Source.Catalog(catalog)
	if err != nil {
		return section("", notice(err.Error()))
	}
	desc := f.Selected(c)
	r, err := d.Source.Regional(source.Selection{Catalog: c.Name, Key: desc.Key})
	if err != nil {
		return section(c.Title, notice(err.Error()))
	}

	children := []g.Node{selector(f, path, c, desc.Key)}
	id := "map-" + c.Name
	if d.Boundaries != nil {
		node, missing := choropleth(id, d.Boundaries, r)
		children = append(children, node)
		if len(missing) > 0 {
			utils.Log.WithField("regions", missing).Debug("Regions without a boundary feature")
			children = append(children, notice("No boundary found for: "+strings.Join(missing, ", ")))
		}
	} else {
		d.Metrics.RecordAssetFallback("geojson")
		children = append(children, notice(mapFallbackNotice), regionBars(id, r))
	}
	children = append(children, regionStats(r, f.Region))
	return section(c.Title, children...)
}
