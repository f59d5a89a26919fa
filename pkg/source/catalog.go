package source

import (
	"fmt"
	"math/rand/v2"
)

// Catalog names. Each one backs a selector on the dashboard.
const (
	CatalogOverviewTrend    = "overview-trend"
	CatalogOverviewPair     = "overview-pair"
	CatalogOverviewDaily    = "overview-daily"
	CatalogOverviewMap      = "overview-map"
	CatalogAirtimeTrend     = "airtime-trend"
	CatalogAirtimeMap       = "airtime-map"
	CatalogAirtimeDaily     = "airtime-daily"
	CatalogFloatTrend       = "float-trend"
	CatalogAcquisitionTrend = "acquisition-trend"
	CatalogAcquisitionMap   = "acquisition-map"
	CatalogAcquisitionDaily = "acquisition-daily"
	CatalogConversionTrend  = "conversion-trend"
	CatalogConversionDaily  = "conversion-daily"
)

// Brand and chart colours.
const (
	Yellow   = "#FFCB05"
	Black    = "#000000"
	DarkGray = "#1A1A1A"
	Gray     = "#4A4A4A"
)

// Dist is the distribution a Generator draws from.
type Dist int

const (
	Uniform Dist = iota
	Normal
	IntRange
)

// Generator describes how to synthesise n points. For Uniform and IntRange, A and B
// are the bounds (B exclusive for IntRange). For Normal, A is the mean and B the
// standard deviation. Scale multiplies each draw, Drift adds a linear ramp from 0 to
// Drift across the series.
type Generator struct {
	Dist  Dist
	A, B  float64
	Scale float64
	Drift float64
}

func uniform(lo, hi float64) Generator  { return Generator{Dist: Uniform, A: lo, B: hi} }
func normal(mean, sd float64) Generator { return Generator{Dist: Normal, A: mean, B: sd} }
func intRange(lo, hi float64) Generator { return Generator{Dist: IntRange, A: lo, B: hi} }

func (g Generator) drift(d float64) Generator {
	g.Drift = d
	return g
}

func (g Generator) scale(s float64) Generator {
	g.Scale = s
	return g
}

// Sample draws n values from r.
func (g Generator) Sample(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		var v float64
		switch g.Dist {
		case Normal:
			v = g.A + r.NormFloat64()*g.B
		case IntRange:
			span := int(g.B - g.A)
			if span < 1 {
				span = 1
			}
			v = g.A + float64(r.IntN(span))
		default:
			v = g.A + r.Float64()*(g.B-g.A)
		}
		if g.Scale != 0 {
			v *= g.Scale
		}
		if n > 1 {
			v += g.Drift * float64(i) / float64(n-1)
		}
		out[i] = v
	}
	return out
}

// Companion is an extra line drawn with a descriptor's primary one.
type Companion struct {
	Label string
	Color string
	Gen   Generator
	Axis  int
}

// Descriptor is one selectable metric.
type Descriptor struct {
	Key       string
	Label     string
	Unit      string
	Color     string
	AxisTitle string
	Gen       Generator
	// Budget is the daily reference; zero means none.
	Budget        float64
	LowerIsBetter bool
	// Places is the number of decimals tables show.
	Places     int32
	Companions []Companion
	Stacked    bool
	// Regional holds fixed per-region figures. When nil, regional values are drawn from Gen.
	Regional map[string]float64
}

// Catalog is an ordered set of descriptors behind one selector.
type Catalog struct {
	Name  string
	Title string
	// Days is the default series length.
	Days int
	// WoW and MoM synthesise the supplied comparison columns of daily tables.
	WoW   Generator
	MoM   Generator
	Items []Descriptor
}

// Lookup finds a descriptor by key.
func (c Catalog) Lookup(key string) (Descriptor, error) {
	for _, d := range c.Items {
		if d.Key == key {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%s/%s: %w", c.Name, key, ErrUnknownSelection)
}

// Keys returns the selector options in display order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c.Items))
	for i, d := range c.Items {
		keys[i] = d.Key
	}
	return keys
}

// Default returns the first option.
func (c Catalog) Default() Descriptor {
	if len(c.Items) == 0 {
		return Descriptor{}
	}
	return c.Items[0]
}

// Regions lists the twelve departments in alphabetical order.
var Regions = []string{
	"Alibori", "Atacora", "Atlantique", "Borgou", "Collines", "Couffo",
	"Donga", "Littoral", "Mono", "Ouémé", "Plateau", "Zou",
}

// regionalFigures builds a region map from values listed in the order
// Littoral, Atlantique, Borgou, Ouémé, Mono, Zou, Collines, Couffo, Plateau, Donga, Atacora, Alibori.
func regionalFigures(v ...float64) map[string]float64 {
	order := []string{
		"Littoral", "Atlantique", "Borgou", "Ouémé", "Mono", "Zou",
		"Collines", "Couffo", "Plateau", "Donga", "Atacora", "Alibori",
	}
	m := make(map[string]float64, len(order))
	for i, r := range order {
		m[r] = v[i]
	}
	return m
}

var catalogs = map[string]Catalog{
	CatalogOverviewTrend: {
		Name: CatalogOverviewTrend, Title: "Airtime Sales & Float Distribution Trends", Days: 90,
		Items: []Descriptor{{
			Key: "Airtime Sales & Float", Label: "Airtime Sales (M XOF)", Unit: "M XOF", Color: Yellow,
			AxisTitle: "Value (M XOF)", Gen: normal(5.5, 0.5).drift(1),
			Companions: []Companion{{Label: "Float Distributed (M XOF)", Color: Black, Gen: normal(8.0, 0.8).drift(1.5)}},
		}},
	},
	CatalogOverviewPair: {
		Name: CatalogOverviewPair, Title: "Acquisition KPIs", Days: 90,
		Items: []Descriptor{
			{
				Key: "GA & Returners", Label: "Gross Adds", Color: Yellow, AxisTitle: "Count",
				Gen:        normal(2300, 150),
				Companions: []Companion{{Label: "Returners", Color: Black, Gen: normal(1600, 100)}},
			},
			{
				Key: "Net Adds & Churners", Label: "Net Adds", Color: "#D32F2F", AxisTitle: "Count",
				Gen:        normal(-6500, 500),
				Companions: []Companion{{Label: "Churners", Color: Gray, Gen: normal(8900, 300)}},
			},
		},
	},
	CatalogOverviewDaily: {
		Name: CatalogOverviewDaily, Title: "Daily Performance", Days: 7,
		WoW: uniform(-5, 10), MoM: uniform(-8, 12),
		Items: []Descriptor{
			{Key: "Market Share (%)", Label: "Market Share", Unit: "%", Gen: uniform(45.8, 46.3), Budget: 45.80, Places: 2},
			{Key: "Gross Adds", Label: "Gross Adds", Gen: intRange(2200, 2500)},
			{Key: "Net Adds", Label: "Net Adds", Gen: intRange(-220000, -180000)},
			{Key: "Returners", Label: "Returners", Gen: intRange(1500, 1700)},
			{Key: "Airtime Sales (M XOF)", Label: "Airtime Sales", Unit: "M", Gen: uniform(5.0, 6.5), Places: 2},
			{Key: "Float Distributed (M XOF)", Label: "Float Distributed", Unit: "M", Gen: uniform(7.5, 9.0), Places: 2},
		},
	},
	CatalogOverviewMap: {
		Name: CatalogOverviewMap, Title: "Performance by Region",
		Items: []Descriptor{
			{Key: "Gross Adds", Label: "Gross Adds", Regional: regionalFigures(8980, 6500, 3200, 1200, 1640, 2800, 900, 680, 590, 750, 480, 520)},
			{Key: "Airtime Sales (M XOF)", Label: "Airtime Sales", Unit: "M XOF", Regional: regionalFigures(95.8, 68.2, 32.1, 12.2, 18.6, 28.4, 9.5, 6.9, 6.1, 7.8, 5.0, 5.4)},
			{Key: "Number of Agents", Label: "Agents", Regional: regionalFigures(1565, 1200, 650, 320, 420, 580, 250, 150, 130, 180, 95, 110)},
			{Key: "Float Distribution (M XOF)", Label: "Float Distribution", Unit: "M XOF", Regional: regionalFigures(131.5, 98.5, 52.3, 19.7, 32.1, 45.8, 15.4, 11.2, 9.9, 12.8, 8.1, 8.7)},
		},
	},
	CatalogAirtimeTrend: {
		Name: CatalogAirtimeTrend, Title: "Airtime Sales & Transactions Trend", Days: 90,
		Items: []Descriptor{
			airtimeChannel("Total (All Channels)", Yellow, uniform(5.0, 6.5).drift(1), intRange(2500, 3200)),
			airtimeChannel("MoMo", "#9C27B0", uniform(1.3, 1.8).drift(0.3), intRange(800, 1100)),
			airtimeChannel("EVD", "#2196F3", uniform(1.1, 1.5).drift(0.25), intRange(700, 950)),
			airtimeChannel("DTC", "#4CAF50", uniform(0.9, 1.3).drift(0.2), intRange(600, 850)),
			airtimeChannel("DTR", "#FF9800", uniform(0.8, 1.1).drift(0.15), intRange(500, 750)),
			airtimeChannel("Xtratime", "#E91E63", uniform(0.3, 0.5).drift(0.1), intRange(200, 400)),
		},
	},
	CatalogAirtimeMap: {
		Name: CatalogAirtimeMap, Title: "Airtime Sales by Region",
		Items: []Descriptor{
			{Key: "Total Sales", Label: "Total Sales", Unit: "M XOF", Gen: uniform(3.5, 8.5)},
			{Key: "MoMo Sales", Label: "MoMo Sales", Unit: "M XOF", Gen: uniform(1.2, 3.0)},
			{Key: "EVD Sales", Label: "EVD Sales", Unit: "M XOF", Gen: uniform(1.0, 2.5)},
			{Key: "DTC Sales", Label: "DTC Sales", Unit: "M XOF", Gen: uniform(0.8, 2.0)},
			{Key: "DTR Sales", Label: "DTR Sales", Unit: "M XOF", Gen: uniform(0.6, 1.5)},
			{Key: "Xtratime Sales", Label: "Xtratime Sales", Unit: "M XOF", Gen: uniform(0.2, 0.8)},
		},
	},
	CatalogAirtimeDaily: {
		Name: CatalogAirtimeDaily, Title: "Daily Performance", Days: 7,
		WoW: uniform(-5, 10), MoM: uniform(-8, 12),
		Items: []Descriptor{
			{Key: "Total Sales", Label: "Total Sales", Unit: "M XOF", Gen: uniform(5.0, 6.5), Places: 2},
			{Key: "Total Volume", Label: "Total Volume", Gen: intRange(2500, 3200)},
			{Key: "MoMo", Label: "MoMo", Unit: "M XOF", Gen: uniform(1.3, 1.8), Places: 2},
			{Key: "EVD", Label: "EVD", Unit: "M XOF", Gen: uniform(1.1, 1.5), Places: 2},
			{Key: "DTC", Label: "DTC", Unit: "M XOF", Gen: uniform(0.9, 1.3), Places: 2},
			{Key: "DTR", Label: "DTR", Unit: "M XOF", Gen: uniform(0.8, 1.1), Places: 2},
			{Key: "Xtratime", Label: "Xtratime", Unit: "M XOF", Gen: uniform(0.3, 0.5), Places: 2},
		},
	},
	CatalogFloatTrend: {
		Name: CatalogFloatTrend, Title: "Float Distribution Trend", Days: 30,
		Items: []Descriptor{{
			Key: "Float by Category", Label: "Agents", Color: Yellow, AxisTitle: "Float (M XOF)",
			Gen: uniform(2, 8).scale(4), Stacked: true,
			Companions: []Companion{
				{Label: "Dealers", Color: Black, Gen: uniform(2, 8).scale(3)},
				{Label: "Retailers", Color: DarkGray, Gen: uniform(2, 8).scale(2)},
				{Label: "Direct", Color: Gray, Gen: uniform(2, 8)},
			},
		}},
	},
	CatalogAcquisitionTrend: {
		Name: CatalogAcquisitionTrend, Title: "Monthly Trend - Acquisition & Drivers", Days: 60,
		Items: []Descriptor{
			{Key: "New Addition", Label: "New Addition", Color: Yellow, AxisTitle: "New Addition Count", Gen: uniform(20000, 30000)},
			{Key: "Churn", Label: "Churn", Color: "#D32F2F", AxisTitle: "Churn Count", Gen: uniform(30000, 45000), LowerIsBetter: true},
			{Key: "Net Adds", Label: "Net Adds", Color: "#0288D1", AxisTitle: "Net Adds Count", Gen: uniform(-8000, 5000)},
			{Key: "Reconnection", Label: "Reconnection", Color: "#00897B", AxisTitle: "Reconnection Count", Gen: uniform(15000, 20000)},
			{Key: "MPOS Active Agent", Label: "MPOS Active Agent", Color: "#7B1FA2", AxisTitle: "MPOS Active Agent Count", Gen: uniform(800000, 950000)},
		},
	},
	CatalogAcquisitionMap: {
		Name: CatalogAcquisitionMap, Title: "Acquisition by Region",
		Items: []Descriptor{
			{Key: "New Additions", Label: "New Additions", Gen: uniform(1500, 4500)},
			{Key: "Net Adds", Label: "Net Adds", Gen: uniform(-500, 2000)},
			{Key: "Churn", Label: "Churn", Gen: uniform(2000, 5000), LowerIsBetter: true},
			{Key: "Net Churn", Label: "Net Churn", Gen: uniform(800, 3000), LowerIsBetter: true},
		},
	},
	CatalogAcquisitionDaily: {
		Name: CatalogAcquisitionDaily, Title: "Daily Performance", Days: 7,
		WoW: uniform(-5, 15), MoM: uniform(-10, 20),
		Items: []Descriptor{
			{Key: "New Additions", Label: "New Additions", Gen: uniform(20000, 30000), Budget: 25000},
			{Key: "Net Adds", Label: "Net Adds", Gen: uniform(5000, 15000), Budget: 10000},
			{Key: "Churn", Label: "Churn", Gen: uniform(30000, 45000), Budget: 38000, LowerIsBetter: true},
			{Key: "Net Churn", Label: "Net Churn", Gen: uniform(15000, 25000), Budget: 20000, LowerIsBetter: true},
			{Key: "Reconnection", Label: "Reconnection", Gen: uniform(10000, 20000), Budget: 15000},
		},
	},
	CatalogConversionTrend: {
		Name: CatalogConversionTrend, Title: "Conversion Rate Trends", Days: 90,
		Items: []Descriptor{
			conversionRate("MoMo Conversion Rate", "#9C27B0", uniform(17, 21).drift(2)),
			conversionRate("Data Conversion Rate", "#2196F3", uniform(22, 27).drift(2.5)),
			conversionRate("Bundle Rate", "#4CAF50", uniform(32, 38).drift(3)),
			conversionRate("Multi-Service Rate", "#FF9800", uniform(11, 15).drift(1.5)),
			conversionRate("Xtratime Rate", "#E91E63", uniform(8, 12).drift(1)),
			conversionRate("VAS Rate", "#00897B", uniform(15, 20).drift(2)),
		},
	},
	CatalogConversionDaily: {
		Name: CatalogConversionDaily, Title: "Daily Performance - Conversion Metrics", Days: 7,
		WoW: uniform(-3, 8), MoM: uniform(-5, 10),
		Items: []Descriptor{
			{Key: "MoMo Rate (%)", Label: "MoMo Rate", Unit: "%", Gen: uniform(18.0, 20.5), Budget: 19.5, Places: 2},
			{Key: "Data Rate (%)", Label: "Data Rate", Unit: "%", Gen: uniform(23.0, 26.0), Budget: 24.5, Places: 2},
			{Key: "Bundle Rate (%)", Label: "Bundle Rate", Unit: "%", Gen: uniform(33.0, 38.0), Budget: 35.5, Places: 2},
			{Key: "Multi-Service (%)", Label: "Multi-Service", Unit: "%", Gen: uniform(12.0, 15.0), Budget: 13.5, Places: 2},
			{Key: "Xtratime (%)", Label: "Xtratime", Unit: "%", Gen: uniform(9.0, 12.0), Budget: 10.5, Places: 2},
			{Key: "VAS Rate (%)", Label: "VAS Rate", Unit: "%", Gen: uniform(16.0, 20.0), Budget: 18, Places: 2},
		},
	},
}

func airtimeChannel(key, color string, sales, transactions Generator) Descriptor {
	return Descriptor{
		Key: key, Label: "Sales (M XOF)", Unit: "M XOF", Color: color, AxisTitle: "Sales (M XOF)",
		Gen:        sales,
		Companions: []Companion{{Label: "Transactions", Color: Black, Gen: transactions, Axis: 1}},
	}
}

func conversionRate(key, color string, gen Generator) Descriptor {
	return Descriptor{Key: key, Label: key, Unit: "%", Color: color, AxisTitle: key + " (%)", Gen: gen}
}

// LookupCatalog returns the named catalog.
func LookupCatalog(name string) (Catalog, error) {
	c, ok := catalogs[name]
	if !ok {
		return Catalog{}, fmt.Errorf("catalog %q: %w", name, ErrUnknownSelection)
	}
	return c, nil
}
