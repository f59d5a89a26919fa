package core

import (
	"math"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/internal/metrics"
	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

const (
	favourableColor = "text-green-700"
	adverseColor    = "text-red-700"
	undefinedStripe = "#A1A1AA"
)

// chipPeriods are the history entries shown under every card.
var chipPeriods = []string{kpi.PeriodYTD, kpi.PeriodWoW, kpi.PeriodMoM}

func withUnit(formatted, unit string) string {
	switch unit {
	case "":
		return formatted
	case "%":
		return formatted + "%"
	}
	return formatted + " " + unit
}

// budgetDelta renders "vs Budget: ↑ 0.7%" or "vs Budget: N/A".
func budgetDelta(cmp kpi.Comparison, err error, lowerIsBetter bool) g.Node {
	if err != nil {
		return Div(Class("budget-delta text-sm text-zinc-500"), g.Text("vs Budget: "+kpi.NotAvailable))
	}
	v := cmp.Variance
	color := favourableColor
	if (v.Direction == kpi.Improved) == lowerIsBetter {
		color = adverseColor
	}
	text := "vs Budget: " + v.Direction.Glyph() + " " + kpi.FormatFixed(math.Abs(v.PercentDelta), 1) + "%"
	return Div(Class("budget-delta text-sm font-semibold "+color), g.Text(text))
}

func historyChips(h kpi.HistoricalDeltas) g.Node {
	chips := []g.Node{}
	for _, period := range chipPeriods {
		val, err := h.Lookup(period)
		if err != nil {
			val = kpi.NotAvailable
		}
		chips = append(chips, Span(Class("chip inline-block bg-zinc-100 rounded px-1.5 py-0.5 text-[11px] text-zinc-600"),
			Strong(g.Text(period+" ")), g.Text(val),
		))
	}
	return Div(Class("flex flex-wrap gap-1 mt-2"), g.Group(chips))
}

// kpiCard renders one comparison. The left stripe carries the severity tier colour.
func kpiCard(c source.CardInput, cmp kpi.Comparison, err error) g.Node {
	stripe := undefinedStripe
	tier := "undefined"
	if err == nil {
		stripe = cmp.Variance.Tier.Color()
		tier = cmp.Variance.Tier.String()
	}
	return Div(Class("kpi-card bg-white border border-zinc-200 rounded-lg shadow-sm p-3 border-l-8"),
		g.Attr("style", "border-left-color: "+stripe),
		g.Attr("data-tier", tier),
		Div(Class("text-xs uppercase tracking-wider text-zinc-500 font-semibold"), g.Text(c.Label)),
		Div(Class("kpi-value text-2xl font-extrabold text-zinc-900 tabular-nums"), g.Text(withUnit(kpi.FormatMagnitude(c.Value), c.Unit))),
		budgetDelta(cmp, err, c.LowerIsBetter),
		historyChips(c.History),
	)
}

// cardGrid runs the comparator for every card. Undefined variances degrade to N/A
// and are counted.
func cardGrid(page source.Page, inputs []source.CardInput, m *metrics.Metrics) g.Node {
	if len(inputs) == 0 {
		return nil
	}
	cards := []g.Node{}
	for _, c := range inputs {
		cmp, err := c.Compare()
		if err != nil {
			m.RecordUndefinedVariance(string(page))
		}
		cards = append(cards, kpiCard(c, cmp, err))
	}
	return Div(ID("kpi-cards"), Class("grid grid-cols-2 md:grid-cols-3 xl:grid-cols-6 gap-3 mb-6"), g.Group(cards))
}

// deltaColor tints a pre-formatted change by its sign.
func deltaColor(delta string) string {
	switch {
	case strings.HasPrefix(delta, "+"):
		return favourableColor
	case strings.HasPrefix(delta, "-"):
		return adverseColor
	}
	return "text-zinc-500"
}

// statsCard renders a headline figure tile.
func statsCard(t source.Tile) g.Node {
	return Div(Class("tile bg-white border border-zinc-200 rounded-lg shadow-sm p-4 text-center"),
		Div(Class("text-xs uppercase tracking-wider text-zinc-500 font-semibold"), g.Text(t.Label)),
		Div(Class("text-2xl font-extrabold tabular-nums text-zinc-900 mt-1"), g.Text(t.Value)),
		Div(Class("text-sm font-semibold "+deltaColor(t.Delta)), g.Text(t.Delta)),
	)
}

func tileGrid(tiles []source.Tile) g.Node {
	if len(tiles) == 0 {
		return nil
	}
	return Div(ID("tiles"), Class("grid grid-cols-2 md:grid-cols-3 xl:grid-cols-6 gap-3 mb-6"), g.Map(tiles, statsCard))
}
