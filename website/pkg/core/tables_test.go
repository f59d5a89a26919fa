package core

import (
	"net/url"
	"testing"
	"time"

	"github.com/sdboard/sdboard/pkg/kpi"
	"github.com/sdboard/sdboard/pkg/source"
)

func TestDailyRows(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	d := source.Daily{
		Label:  "Gross Adds",
		Dates:  []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2), start.AddDate(0, 0, 3)},
		Values: []float64{100, 110, 0, 50},
		WoW:    []float64{5, -3, 0, 2},
		MoM:    []float64{1.5, 12, -8, 4.2},
		Budget: 100,
	}

	rows := DailyRows(d)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	tests := []struct {
		name string
		got  Cell
		want Cell
	}{
		{"first DoD", rows[0].DoD, Cell{Text: "-"}},
		{"DoD", rows[1].DoD, Cell{Text: "+10.0%", Color: kpi.Strong.Color()}},
		{"DoD to zero", rows[2].DoD, Cell{Text: "-100.0%", Color: kpi.Adverse.Color()}},
		{"DoD from zero", rows[3].DoD, Cell{Text: "-"}},
		{"WoW", rows[1].WoW, Cell{Text: "-3.0%", Color: kpi.Adverse.Color()}},
		{"MoM", rows[3].MoM, Cell{Text: "+4.2%", Color: kpi.Moderate.Color()}},
		{"vs Budget on target", rows[0].VsBudget, Cell{Text: "+0.0%", Color: kpi.Marginal.Color()}},
		{"vs Budget", rows[3].VsBudget, Cell{Text: "-50.0%", Color: kpi.Adverse.Color()}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}

	if rows[0].Date != "2025-10-01" || rows[0].Value != "100" {
		t.Errorf("first row = %+v", rows[0])
	}
}

func TestPercentCellColoursDisplayedValue(t *testing.T) {
	tests := []struct {
		percent float64
		want    Cell
	}{
		{4.96, Cell{Text: "+5.0%", Color: kpi.Strong.Color()}},
		{4.94, Cell{Text: "+4.9%", Color: kpi.Moderate.Color()}},
		{1.96, Cell{Text: "+2.0%", Color: kpi.Moderate.Color()}},
		{-2.04, Cell{Text: "-2.0%", Color: kpi.Marginal.Color()}},
		{-2.06, Cell{Text: "-2.1%", Color: kpi.Adverse.Color()}},
	}
	for _, tt := range tests {
		if got := percentCell(tt.percent); got != tt.want {
			t.Errorf("percentCell(%v) = %+v, want %+v", tt.percent, got, tt.want)
		}
	}
}

func TestDailyRowsWithoutBudget(t *testing.T) {
	rows := DailyRows(source.Daily{Values: []float64{1.234, 1.5}, Places: 2})
	for i, r := range rows {
		if r.VsBudget.Text != "-" || r.VsBudget.Color != "" {
			t.Errorf("row %d vs Budget = %+v, want -", i, r.VsBudget)
		}
		if r.WoW.Text != "-" {
			t.Errorf("row %d WoW = %+v, want -", i, r.WoW)
		}
	}
	if rows[0].Value != "1.23" {
		t.Errorf("value = %q, want 1.23", rows[0].Value)
	}
}

func TestChangeOver(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 100 + float64(i)
	}

	tests := []struct {
		name   string
		values []float64
		back   int
		want   string
	}{
		{"year to date", values, len(values), "+39.0%"},
		{"month", values, 30, "+26.4%"},
		{"short series", values[:10], 30, "+9.0%"},
		{"zero start", []float64{0, 5}, 2, kpi.NotAvailable},
		{"single point", []float64{5}, 30, kpi.NotAvailable},
	}
	for _, tt := range tests {
		if got := changeOver(tt.values, tt.back); got != tt.want {
			t.Errorf("%s: changeOver = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSummarizeRegions(t *testing.T) {
	if _, ok := SummarizeRegions(nil); ok {
		t.Fatal("expected no stats for an empty slice")
	}

	stats, ok := SummarizeRegions([]source.RegionValue{
		{Region: "Alibori", Value: 4},
		{Region: "Borgou", Value: 10},
		{Region: "Donga", Value: 1},
		{Region: "Zou", Value: 10},
	})
	if !ok {
		t.Fatal("expected stats")
	}
	if stats.Top.Region != "Borgou" || stats.Lowest.Region != "Donga" {
		t.Errorf("top/lowest = %s/%s, want Borgou/Donga", stats.Top.Region, stats.Lowest.Region)
	}
	if stats.Total != 25 || stats.Average != 6.25 {
		t.Errorf("total/average = %v/%v, want 25/6.25", stats.Total, stats.Average)
	}
}

func TestParseFilters(t *testing.T) {
	f := ParseFilters(url.Values{
		"date":                   {"Last 30 Days"},
		"region":                 {"Ouémé"},
		"tier":                   {"Platinum"},
		"from":                   {"2025-01-01"},
		source.CatalogAirtimeMap: {"EVD Sales"},
		"unknown-catalog":        {"x"},
	})

	if f.Date != "Last 30 Days" || f.Days() != 30 {
		t.Errorf("date = %q days = %d", f.Date, f.Days())
	}
	if f.Region != "Ouémé" {
		t.Errorf("region = %q", f.Region)
	}
	if f.Tier != Tiers[0] || f.Channel != Channels[0] {
		t.Errorf("tier/channel = %q/%q, want defaults", f.Tier, f.Channel)
	}
	if f.From != "" {
		t.Errorf("from = %q, want empty outside Custom", f.From)
	}
	if len(f.Selections) != 1 || f.Selections[source.CatalogAirtimeMap] != "EVD Sales" {
		t.Errorf("selections = %v", f.Selections)
	}

	back := ParseFilters(f.Values())
	if back.Date != f.Date || back.Region != f.Region || back.Selections[source.CatalogAirtimeMap] != "EVD Sales" {
		t.Errorf("re-parsed filters = %+v", back)
	}
}

func TestParseFiltersCustomRange(t *testing.T) {
	f := ParseFilters(url.Values{"date": {"Custom"}, "from": {"2025-09-01"}, "to": {"not-a-date"}})
	if f.From != "2025-09-01" || f.To != "" {
		t.Errorf("from/to = %q/%q", f.From, f.To)
	}
	if f.Days() != 0 {
		t.Errorf("days = %d, want catalog default", f.Days())
	}
}

func TestDefaultFiltersHaveNoQuery(t *testing.T) {
	if q := ParseFilters(url.Values{}).Query(); q != "" {
		t.Errorf("Query() = %q, want empty", q)
	}
}

func TestSelectedFallsBackToFirstOption(t *testing.T) {
	c, err := source.LookupCatalog(source.CatalogAcquisitionDaily)
	if err != nil {
		t.Fatal(err)
	}
	f := ParseFilters(url.Values{source.CatalogAcquisitionDaily: {"Nope"}})
	if got := f.Selected(c).Key; got != c.Default().Key {
		t.Errorf("Selected = %q, want %q", got, c.Default().Key)
	}
}
