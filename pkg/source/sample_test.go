package source

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/sdboard/sdboard/pkg/kpi"
)

var asOf = time.Date(2025, 10, 7, 15, 4, 5, 0, time.UTC)

func TestSeriesDeterministic(t *testing.T) {
	a := NewSample(42, asOf)
	b := NewSample(42, asOf)
	sel := Selection{Catalog: CatalogAirtimeTrend, Key: "MoMo"}

	s1, err := a.Series(sel, 0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	s2, err := b.Series(sel, 0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Fatal("same seed and selection produced different series")
	}

	other, _ := NewSample(7, asOf).Series(sel, 0)
	if reflect.DeepEqual(s1.Lines[0].Values, other.Lines[0].Values) {
		t.Fatal("different seeds produced identical values")
	}
}

func TestSeriesShape(t *testing.T) {
	src := NewSample(1, asOf)
	s, err := src.Series(Selection{Catalog: CatalogAirtimeTrend, Key: "Total (All Channels)"}, 0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(s.Dates) != 90 {
		t.Fatalf("len(Dates) = %d, want 90", len(s.Dates))
	}
	if !s.Dates[89].Equal(time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last date = %v", s.Dates[89])
	}
	if len(s.Lines) != 2 || s.Lines[1].Axis != 1 || s.SecondaryAxisTitle != "Transactions" {
		t.Fatalf("unexpected lines: %+v", s.Lines)
	}
	for _, v := range s.Lines[1].Values {
		if v < 2500 || v >= 3200 || v != math.Trunc(v) {
			t.Fatalf("transaction count %v outside [2500, 3200)", v)
		}
	}
	for i, v := range s.Lines[0].Values {
		lo, hi := 5.0, 6.5+1
		if v < lo || v > hi {
			t.Fatalf("sales[%d] = %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

func TestSeriesDaysOverride(t *testing.T) {
	s, err := NewSample(1, asOf).Series(Selection{Catalog: CatalogAcquisitionTrend, Key: "Churn"}, 14)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(s.Dates) != 14 || len(s.Lines[0].Values) != 14 {
		t.Fatalf("got %d dates, %d values", len(s.Dates), len(s.Lines[0].Values))
	}
}

func TestUnknownSelection(t *testing.T) {
	src := NewSample(1, asOf)
	tests := []struct {
		name string
		fn   func() error
	}{
		{"unknown catalog", func() error { _, err := src.Series(Selection{Catalog: "nope", Key: "x"}, 0); return err }},
		{"unknown key", func() error { _, err := src.Regional(Selection{Catalog: CatalogAirtimeMap, Key: "nope"}); return err }},
		{"unknown daily", func() error { _, err := src.Daily(Selection{Catalog: CatalogOverviewDaily, Key: "nope"}, 0); return err }},
		{"unknown breakdown", func() error { _, err := src.Breakdown("nope"); return err }},
		{"unknown page", func() error { _, err := ParsePage("nope"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrUnknownSelection) {
				t.Fatalf("got %v, want ErrUnknownSelection", err)
			}
		})
	}
}

func TestRegionalFixedFigures(t *testing.T) {
	r, err := NewSample(1, asOf).Regional(Selection{Catalog: CatalogOverviewMap, Key: "Gross Adds"})
	if err != nil {
		t.Fatalf("Regional: %v", err)
	}
	if len(r.Values) != len(Regions) {
		t.Fatalf("got %d regions", len(r.Values))
	}
	got := map[string]float64{}
	total := 0.0
	for _, rv := range r.Values {
		got[rv.Region] = rv.Value
		total += rv.Value
	}
	if got["Littoral"] != 8980 || got["Ouémé"] != 1200 || got["Alibori"] != 520 {
		t.Fatalf("unexpected figures: %v", got)
	}
	if total != 28240 {
		t.Fatalf("total = %v, want 28240", total)
	}
}

func TestRegionalDrawn(t *testing.T) {
	r, err := NewSample(3, asOf).Regional(Selection{Catalog: CatalogAcquisitionMap, Key: "Net Adds"})
	if err != nil {
		t.Fatalf("Regional: %v", err)
	}
	for _, rv := range r.Values {
		if rv.Value < -500 || rv.Value >= 2000 {
			t.Fatalf("%s = %v outside [-500, 2000)", rv.Region, rv.Value)
		}
	}
}

func TestDaily(t *testing.T) {
	d, err := NewSample(9, asOf).Daily(Selection{Catalog: CatalogAcquisitionDaily, Key: "Churn"}, 0)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if len(d.Values) != 7 || len(d.WoW) != 7 || len(d.MoM) != 7 {
		t.Fatalf("unexpected lengths: %d %d %d", len(d.Values), len(d.WoW), len(d.MoM))
	}
	if d.Budget != 38000 {
		t.Fatalf("Budget = %v", d.Budget)
	}
}

func TestCardsBudgetsReproducePercent(t *testing.T) {
	src := NewSample(1, asOf)
	want := map[string]float64{
		"Total Sales":  8.5,
		"Churn":        -3.8,
		"Reconnection": 16.0,
		"MoMo Rate":    6.1,
	}
	for _, page := range Pages {
		for _, c := range src.Cards(page) {
			pct, ok := want[c.Label]
			if !ok {
				continue
			}
			v, err := kpi.ComputeVariance(c.Value, c.Budget)
			if err != nil {
				t.Fatalf("%s: %v", c.Label, err)
			}
			if math.Abs(v.PercentDelta-pct) > 1e-9 {
				t.Fatalf("%s: variance %v, want %v", c.Label, v.PercentDelta, pct)
			}
		}
	}
}

func TestOverviewNetAddsScenario(t *testing.T) {
	for _, c := range NewSample(1, asOf).Cards(PageOverview) {
		if c.Label != "Net Adds" {
			continue
		}
		v, err := kpi.ComputeVariance(c.Value, c.Budget)
		if err != nil {
			t.Fatal(err)
		}
		if v.Tier != kpi.Adverse || v.Direction != kpi.Worsened {
			t.Fatalf("got %+v", v)
		}
		return
	}
	t.Fatal("Net Adds card missing")
}

func TestCardsAreFreshCopies(t *testing.T) {
	src := NewSample(1, asOf)
	a := src.Cards(PageOverview)
	a[0].History[kpi.PeriodYTD] = "changed"
	b := src.Cards(PageOverview)
	if b[0].History[kpi.PeriodYTD] != "+2.3%" {
		t.Fatal("card history shared between calls")
	}
}

func TestConcurrentReads(t *testing.T) {
	src := NewSample(5, asOf)
	sel := Selection{Catalog: CatalogConversionTrend, Key: "VAS Rate"}
	want, _ := src.Series(sel, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := src.Series(sel, 0)
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent Series diverged: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestCatalogKeys(t *testing.T) {
	c, err := LookupCatalog(CatalogOverviewDaily)
	if err != nil {
		t.Fatal(err)
	}
	keys := c.Keys()
	if len(keys) != 6 || keys[0] != "Market Share (%)" {
		t.Fatalf("Keys = %v", keys)
	}
	if c.Default().Key != keys[0] {
		t.Fatalf("Default = %q", c.Default().Key)
	}
}

func TestConversionDailyBudgets(t *testing.T) {
	c, err := LookupCatalog(CatalogConversionDaily)
	if err != nil {
		t.Fatal(err)
	}
	for _, seed := range []uint64{1, 42, 2025} {
		src := NewSample(seed, asOf)
		for _, key := range c.Keys() {
			d, err := src.Daily(Selection{Catalog: c.Name, Key: key}, 0)
			if err != nil {
				t.Fatalf("Daily(%s): %v", key, err)
			}
			for i, v := range d.Values {
				res, err := kpi.ComputeVariance(v, d.Budget)
				if err != nil {
					t.Fatalf("%s: %v", key, err)
				}
				if math.Abs(res.PercentDelta) > 15 {
					t.Errorf("seed %d %s day %d: vs budget %.1f%%, want within 15%%", seed, key, i, res.PercentDelta)
				}
			}
		}
	}
}

func TestDailyBudgetsWithinRange(t *testing.T) {
	for name, c := range catalogs {
		if c.Days == 0 {
			continue
		}
		for _, d := range c.Items {
			if d.Budget == 0 || d.Gen.Dist != Uniform && d.Gen.Dist != IntRange {
				continue
			}
			if d.Budget < d.Gen.A || d.Budget > d.Gen.B {
				t.Errorf("%s %s: budget %v outside generated range [%v, %v]", name, d.Key, d.Budget, d.Gen.A, d.Gen.B)
			}
		}
	}
}
