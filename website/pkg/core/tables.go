package core

import (
	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

const emptyCell = "-"

// Cell is one variance cell of a daily table. Color is empty when the cell is "-".
type Cell struct {
	Text  string
	Color string
}

// DailyRow is one day of a daily performance table.
type DailyRow struct {
	Date     string
	Value    string
	DoD      Cell
	WoW      Cell
	MoM      Cell
	VsBudget Cell
}

// percentCell colours the one-decimal value the cell displays, so "+5.0%" is always Strong.
func percentCell(p float64) Cell {
	shown, _ := decimal.NewFromFloat(p).Round(1).Float64()
	return Cell{Text: kpi.FormatPercent(p), Color: kpi.ClassifySeverity(shown).Color()}
}

func varianceCell(value, reference float64) Cell {
	v, err := kpi.ComputeVariance(value, reference)
	if err != nil {
		return Cell{Text: emptyCell}
	}
	return percentCell(v.PercentDelta)
}

func dailyValue(v float64, places int32) string {
	if places > 0 {
		return kpi.FormatFixed(v, places)
	}
	return kpi.FormatCount(v)
}

// DailyRows builds the table rows, oldest first. The first DoD and every variance
// against a zero reference render as "-".
func DailyRows(d source.Daily) []DailyRow {
	rows := make([]DailyRow, len(d.Values))
	for i, v := range d.Values {
		row := DailyRow{
			Value:    dailyValue(v, d.Places),
			DoD:      Cell{Text: emptyCell},
			WoW:      Cell{Text: emptyCell},
			MoM:      Cell{Text: emptyCell},
			VsBudget: Cell{Text: emptyCell},
		}
		if i < len(d.Dates) {
			row.Date = d.Dates[i].Format(dateFormat)
		}
		if i > 0 {
			row.DoD = varianceCell(v, d.Values[i-1])
		}
		if i < len(d.WoW) {
			row.WoW = percentCell(d.WoW[i])
		}
		if i < len(d.MoM) {
			row.MoM = percentCell(d.MoM[i])
		}
		if d.Budget != 0 {
			row.VsBudget = varianceCell(v, d.Budget)
		}
		rows[i] = row
	}
	return rows
}

func cellTd(c Cell) g.Node {
	if c.Color == "" {
		return Td(Class("px-3 py-2 text-center text-zinc-400"), g.Text(c.Text))
	}
	return Td(Class("variance px-3 py-2 text-center font-bold text-white"),
		g.Attr("style", "background-color: "+c.Color),
		g.Text(c.Text),
	)
}

func th(text string) g.Node {
	return Th(Class("px-3 py-2 text-center text-[11px] font-bold uppercase tracking-wider"), g.Text(text))
}

// dailyTable renders the rows with a black and yellow header.
func dailyTable(d source.Daily) g.Node {
	rows := []g.Node{}
	for _, r := range DailyRows(d) {
		rows = append(rows, Tr(Class("border-b border-zinc-200 text-sm"),
			Td(Class("px-3 py-2 text-center tabular-nums"), g.Text(r.Date)),
			Td(Class("px-3 py-2 text-center tabular-nums font-semibold"), g.Text(withUnit(r.Value, d.Unit))),
			cellTd(r.DoD),
			cellTd(r.WoW),
			cellTd(r.MoM),
			cellTd(r.VsBudget),
		))
	}
	return Div(Class("overflow-x-auto"),
		Table(Class("daily-table w-full border border-zinc-200"),
			THead(
				Tr(Class("bg-black text-mtn-yellow"),
					th("Date"), th(d.Label), th("DoD"), th("WoW"), th("MoM"), th("vs Budget"),
				),
			),
			TBody(rows...),
		),
	)
}

// dailySection renders the daily table for the selected KPI of catalog.
func (d *Dashboard) dailySection(path string, f Filters, catalog string) g.Node {
	c, err := d.Source.Catalog(catalog)
	if err != nil {
		return section("", notice(err.Error()))
	}
	desc := f.Selected(c)
	daily, err := d.Source.Daily(source.Selection{Catalog: c.Name, Key: desc.Key}, 0)
	if err != nil {
		return section(c.Title, notice(err.Error()))
	}
	return section(c.Title, selector(f, path, c, desc.Key), dailyTable(daily))
}
