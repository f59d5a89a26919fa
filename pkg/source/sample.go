package source

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/sdboard/sdboard/pkg/kpi"
)

// SampleSource synthesises dashboard data. Every call seeds its own generator from
// the source seed and the selection, so the same selection always yields the same
// figures and concurrent calls share nothing mutable.
type SampleSource struct {
	seed uint64
	asOf time.Time
}

var _ MetricsSource = (*SampleSource)(nil)

// NewSample returns a source whose series end on asOf.
func NewSample(seed uint64, asOf time.Time) *SampleSource {
	y, m, d := asOf.Date()
	return &SampleSource{seed: seed, asOf: time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())}
}

// AsOf returns the report date.
func (s *SampleSource) AsOf() time.Time {
	return s.asOf
}

func (s *SampleSource) rng(parts ...string) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed, xxhash.Sum64String(strings.Join(parts, "\x00"))))
}

func (s *SampleSource) dates(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = s.asOf.AddDate(0, 0, i-n+1)
	}
	return out
}

// Catalog returns the named selector catalog.
func (s *SampleSource) Catalog(name string) (Catalog, error) {
	return LookupCatalog(name)
}

func (s *SampleSource) lookup(sel Selection) (Catalog, Descriptor, error) {
	c, err := LookupCatalog(sel.Catalog)
	if err != nil {
		return Catalog{}, Descriptor{}, err
	}
	d, err := c.Lookup(sel.Key)
	if err != nil {
		return Catalog{}, Descriptor{}, err
	}
	return c, d, nil
}

// Series returns the lines of a trend selection. days <= 0 uses the catalog default.
func (s *SampleSource) Series(sel Selection, days int) (Series, error) {
	c, d, err := s.lookup(sel)
	if err != nil {
		return Series{}, err
	}
	if days <= 0 {
		days = c.Days
	}
	n := strconv.Itoa(days)

	out := Series{
		Title:     c.Title,
		AxisTitle: d.AxisTitle,
		Dates:     s.dates(days),
	}
	out.Lines = append(out.Lines, Line{
		Label:   d.Label,
		Color:   d.Color,
		Values:  d.Gen.Sample(s.rng(sel.Catalog, sel.Key, d.Label, n), days),
		Stacked: d.Stacked,
	})
	for _, cmp := range d.Companions {
		out.Lines = append(out.Lines, Line{
			Label:   cmp.Label,
			Color:   cmp.Color,
			Values:  cmp.Gen.Sample(s.rng(sel.Catalog, sel.Key, cmp.Label, n), days),
			Axis:    cmp.Axis,
			Stacked: d.Stacked,
		})
		if cmp.Axis == 1 {
			out.SecondaryAxisTitle = cmp.Label
		}
	}
	return out, nil
}

// Regional returns one value per region, in Regions order.
func (s *SampleSource) Regional(sel Selection) (Regional, error) {
	_, d, err := s.lookup(sel)
	if err != nil {
		return Regional{}, err
	}

	out := Regional{Label: d.Key, Unit: d.Unit, Values: make([]RegionValue, len(Regions))}
	var drawn []float64
	if d.Regional == nil {
		drawn = d.Gen.Sample(s.rng(sel.Catalog, sel.Key, "regions"), len(Regions))
	}
	for i, r := range Regions {
		v := d.Regional[r]
		if drawn != nil {
			v = drawn[i]
		}
		out.Values[i] = RegionValue{Region: r, Value: v}
	}
	return out, nil
}

// Daily returns the last days of a daily-table selection. days <= 0 uses the catalog default.
func (s *SampleSource) Daily(sel Selection, days int) (Daily, error) {
	c, d, err := s.lookup(sel)
	if err != nil {
		return Daily{}, err
	}
	if days <= 0 {
		days = c.Days
	}
	n := strconv.Itoa(days)

	return Daily{
		Label:  d.Key,
		Unit:   d.Unit,
		Places: d.Places,
		Dates:  s.dates(days),
		Values: d.Gen.Sample(s.rng(sel.Catalog, sel.Key, "values", n), days),
		WoW:    c.WoW.Sample(s.rng(sel.Catalog, sel.Key, "wow", n), days),
		MoM:    c.MoM.Sample(s.rng(sel.Catalog, sel.Key, "mom", n), days),
		Budget: d.Budget,
	}, nil
}

// Breakdown names.
const (
	BreakdownChannelMix       = "channel-mix"
	BreakdownChannelGrossAdds = "channel-gross-adds"
	BreakdownChannelAirtime   = "channel-airtime"
	BreakdownMarketShare      = "market-share"
	BreakdownConversionMix    = "conversion-mix"
	BreakdownTierRevenue      = "tier-revenue"
	BreakdownTierProductivity = "tier-productivity"
	BreakdownTierCount        = "tier-count"
)

var (
	channels     = []string{"YC (Yellow Centers)", "DTC (MTN Shops)", "DTR (Dealers)", "Digital"}
	agentTiers   = []string{"Gold (Top 10%)", "Silver (Next 20%)", "Bronze (Next 30%)", "Inactive (40%)"}
	brandPalette = []string{Yellow, Black, DarkGray, Gray}
)

func shares(labels []string, values []float64, colors []string) []Slice {
	out := make([]Slice, len(labels))
	for i := range labels {
		out[i] = Slice{Label: labels[i], Value: values[i], Color: colors[i%len(colors)]}
	}
	return out
}

// Breakdown returns the fixed shares behind donut and tier charts.
func (s *SampleSource) Breakdown(name string) ([]Slice, error) {
	switch name {
	case BreakdownChannelMix:
		return shares(channels, []float64{48, 35, 13, 4}, brandPalette), nil
	case BreakdownChannelGrossAdds:
		return shares(channels, []float64{7795, 5686, 2113, 646}, brandPalette), nil
	case BreakdownChannelAirtime:
		return shares(channels, []float64{52.1, 54.8, 23.5, 26.1}, brandPalette), nil
	case BreakdownMarketShare:
		return shares([]string{"MTN", "Moov", "Others"}, []float64{43.83, 32.67, 23.50},
			[]string{Yellow, "#FF6B35", Gray}), nil
	case BreakdownConversionMix:
		return shares([]string{"MoMo", "Data", "Bundle", "Multi-Service", "Xtratime", "VAS"},
			[]float64{19.2, 24.7, 35.8, 13.4, 10.5, 18.2},
			[]string{"#9C27B0", "#2196F3", "#4CAF50", "#FF9800", "#E91E63", "#00897B"}), nil
	case BreakdownTierRevenue:
		return shares(agentTiers, []float64{198.2, 89.6, 45.4, 8.3}, []string{Black, Yellow, DarkGray, Gray}), nil
	case BreakdownTierProductivity:
		return shares(agentTiers, []float64{95, 78, 62, 25}, []string{Black, Yellow, DarkGray, Gray}), nil
	case BreakdownTierCount:
		return shares(agentTiers, []float64{450, 900, 1350, 1800}, brandPalette), nil
	}
	return nil, fmt.Errorf("breakdown %q: %w", name, ErrUnknownSelection)
}

// budgetFor derives the budget that puts value at pct percent against it.
func budgetFor(value, pct float64) float64 {
	return value / (1 + pct/100)
}

func history(ytd, wow, mom string) kpi.HistoricalDeltas {
	return kpi.HistoricalDeltas{kpi.PeriodYTD: ytd, kpi.PeriodWoW: wow, kpi.PeriodMoM: mom}
}

// Cards returns the KPI cards of a page. Pages without cards return nil.
func (s *SampleSource) Cards(page Page) []CardInput {
	switch page {
	case PageOverview:
		return []CardInput{
			{Label: "Market Share", Value: 46.10, Unit: "%", Budget: 45.80, History: history("+2.3%", "-0.2%", "+0.5%")},
			{Label: "Gross Adds", Value: 16240, Budget: 17000, History: history("-3.8%", "-0.4%", "-2.8%")},
			{Label: "Net Adds", Value: -6100, Budget: -5000, History: history("-12.5%", "-8.4%", "-22.5%")},
			{Label: "Returners", Value: 11460, Budget: 12000, History: history("-5.2%", "-9.6%", "-22.8%")},
			{Label: "Airtime Sales", Value: 156.5, Unit: "M XOF", Budget: 145.0, History: history("+8.2%", "+7.9%", "+7.8%")},
			{Label: "Float Distributed", Value: 245.8, Unit: "M XOF", Budget: 230.0, History: history("+6.9%", "+7.5%", "+6.2%")},
		}
	case PageAirtime:
		return []CardInput{
			{Label: "Total Sales", Value: 156.5, Unit: "M XOF", Budget: budgetFor(156.5, 8.5), History: history("5.12B", "+12.3M", "+7.8%")},
			{Label: "Total Volume", Value: 78540, Budget: budgetFor(78540, 5.2), History: history("2.45M", "+2.45K", "+4.8%")},
			{Label: "MoMo", Value: 45.2, Unit: "M XOF", Budget: budgetFor(45.2, 9.1), History: history("1.48B", "+4.1M", "+8.5%")},
			{Label: "EVD", Value: 38.6, Unit: "M XOF", Budget: budgetFor(38.6, 7.8), History: history("1.26B", "+3.0M", "+7.2%")},
			{Label: "DTC", Value: 32.4, Unit: "M XOF", Budget: budgetFor(32.4, 6.5), History: history("1.06B", "+2.1M", "+6.0%")},
			{Label: "DTR", Value: 28.1, Unit: "M XOF", Budget: budgetFor(28.1, 10.2), History: history("918M", "+2.6M", "+9.5%")},
			{Label: "Xtratime", Value: 12.2, Unit: "M XOF", Budget: budgetFor(12.2, 12.5), History: history("398M", "+1.4M", "+11.8%")},
		}
	case PageAcquisition:
		return []CardInput{
			{Label: "New Additions", Value: 25150, Budget: budgetFor(25150, 7.5), History: history("670.5K", "+2.1%", "+5.8%")},
			{Label: "Net Adds", Value: 10550, Budget: budgetFor(10550, 5.5), History: history("286.2K", "+3.2%", "+4.1%")},
			{Label: "Churn", Value: 36550, Budget: budgetFor(36550, -3.8), History: history("2.08M", "-2.4%", "-3.8%"), LowerIsBetter: true},
			{Label: "Net Churn", Value: 19150, Budget: budgetFor(19150, -4.2), History: history("1.15M", "-3.1%", "-4.2%"), LowerIsBetter: true},
			{Label: "Reconnection", Value: 17400, Budget: budgetFor(17400, 16.0), History: history("929.9K", "+12.5%", "+16.0%")},
		}
	case PageConversion:
		return []CardInput{
			{Label: "MoMo Conv.", Value: 3120, Budget: budgetFor(3120, 7.7), History: history("98.5K", "+240", "+6.8%")},
			{Label: "MoMo Rate", Value: 19.2, Unit: "%", Budget: budgetFor(19.2, 6.1), History: history("18.5%", "+1.2%", "+0.9%")},
			{Label: "Data Conv.", Value: 4020, Budget: budgetFor(4020, 8.5), History: history("127K", "+340", "+7.5%")},
			{Label: "Data Rate", Value: 24.7, Unit: "%", Budget: budgetFor(24.7, 7.3), History: history("23.8%", "+1.8%", "+1.2%")},
			{Label: "Bundle Rate", Value: 35.8, Unit: "%", Budget: budgetFor(35.8, 6.7), History: history("34.2%", "+2.4%", "+1.8%")},
			{Label: "Multi-Service", Value: 13.4, Unit: "%", Budget: budgetFor(13.4, 6.7), History: history("12.8%", "+0.9%", "+0.6%")},
		}
	}
	return nil
}

// Tiles returns the headline figures of pages that have no budgeted cards.
func (s *SampleSource) Tiles(page Page) []Tile {
	switch page {
	case PageFloat:
		return []Tile{
			{Label: "Total Float", Value: kpi.FormatFixed(245.8, 1) + "M XOF", Delta: "+7.5%"},
			{Label: "Float - Agents", Value: "145.8M XOF", Delta: "+6.2%"},
			{Label: "Utilization Rate", Value: "83.5%", Delta: "+3.2%"},
			{Label: "Turnover", Value: "4.7 Days", Delta: "-0.5"},
		}
	case PageAgents:
		return []Tile{
			{Label: "Total Agents", Value: kpi.FormatCount(4500), Delta: "+125"},
			{Label: "New Agents", Value: "125", Delta: "+15"},
			{Label: "Churn", Value: "85", Delta: "-12"},
			{Label: "Net Growth", Value: "40", Delta: "+3"},
			{Label: "Activation Rate", Value: "87.2%", Delta: "+2.1%"},
			{Label: "Per 1K Pop", Value: "3.8", Delta: "+0.2"},
		}
	case PagePerformance:
		return []Tile{
			{Label: "Active", Value: kpi.FormatCount(3850), Delta: "85.6%"},
			{Label: "Selling Airtime", Value: "92.3%", Delta: "+1.8%"},
			{Label: "Registering SIMs", Value: "78.5%", Delta: "+2.3%"},
			{Label: "Multi-Service", Value: "65.2%", Delta: "+4.1%"},
			{Label: "Avg Revenue", Value: "40.6K XOF", Delta: "+3.2K"},
			{Label: "Productivity", Value: "74.5", Delta: "+2.3"},
		}
	}
	return nil
}
