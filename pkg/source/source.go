// Package source supplies the figures the dashboard renders.
//
// A MetricsSource is built once at start-up and only read afterwards. The only
// implementation shipped is SampleSource, which synthesises deterministic data from
// a seed.
package source

import (
	"errors"
	"time"

	"github.com/sdboard/sdboard/pkg/kpi"
)

// ErrUnknownSelection is returned when a catalog or key is not known to the source.
var ErrUnknownSelection = errors.New("unknown selection")

// Page identifies one dashboard tab.
type Page string

const (
	PageOverview    Page = "overview"
	PageAirtime     Page = "airtime"
	PageFloat       Page = "float"
	PageAgents      Page = "agents"
	PagePerformance Page = "performance"
	PageAcquisition Page = "acquisition"
	PageConversion  Page = "conversion"
)

// Pages lists every tab in display order.
var Pages = []Page{
	PageOverview, PageAirtime, PageFloat, PageAgents,
	PagePerformance, PageAcquisition, PageConversion,
}

// Title returns the tab caption.
func (p Page) Title() string {
	switch p {
	case PageOverview:
		return "Overview"
	case PageAirtime:
		return "Airtime Sales"
	case PageFloat:
		return "Float Management"
	case PageAgents:
		return "Agent Network"
	case PagePerformance:
		return "Agent Performance"
	case PageAcquisition:
		return "Acquisition"
	case PageConversion:
		return "Customer Conversion"
	}
	return string(p)
}

// ParsePage validates a page slug.
func ParsePage(s string) (Page, error) {
	for _, p := range Pages {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrUnknownSelection
}

// CardInput is everything a KPI card needs before the comparator runs.
type CardInput struct {
	Label         string
	Value         float64
	Unit          string
	Budget        float64
	History       kpi.HistoricalDeltas
	LowerIsBetter bool
}

// Observation returns the card's value as a comparator input.
func (c CardInput) Observation() kpi.Observation {
	return kpi.Observation{Name: c.Label, Value: c.Value, Unit: c.Unit}
}

// Tile is a pre-formatted headline figure with its change, shown on pages that have
// no budget to compare against.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
}

// Selection names one item of one catalog, e.g. {CatalogAirtimeMap, "MoMo Sales"}.
type Selection struct {
	Catalog string
	Key     string
}

// Line is one plotted series.
type Line struct {
	Label  string
	Color  string
	Values []float64
	// Axis is 0 for the primary y axis and 1 for the secondary one.
	Axis    int
	Stacked bool
}

// Series is a set of lines sharing the same dates.
type Series struct {
	Title     string
	AxisTitle string
	// SecondaryAxisTitle is empty unless a line uses Axis 1.
	SecondaryAxisTitle string
	Dates              []time.Time
	Lines              []Line
}

// RegionValue is one region's figure.
type RegionValue struct {
	Region string  `json:"region"`
	Value  float64 `json:"value"`
}

// Regional is a per-region metric.
type Regional struct {
	Label  string
	Unit   string
	Values []RegionValue
}

// Slice is one share of a breakdown chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Daily is a short daily series for the performance tables. WoW and MoM are supplied
// figures. DoD and vs Budget are left to the comparator.
type Daily struct {
	Label  string
	Unit   string
	Places int32
	Dates  []time.Time
	Values []float64
	WoW    []float64
	MoM    []float64
	// Budget is zero when the metric has none.
	Budget float64
}

// MetricsSource is the read-only capability the view layer renders from.
type MetricsSource interface {
	AsOf() time.Time
	Cards(page Page) []CardInput
	Tiles(page Page) []Tile
	Catalog(name string) (Catalog, error)
	Series(sel Selection, days int) (Series, error)
	Regional(sel Selection) (Regional, error)
	Breakdown(name string) ([]Slice, error)
	Daily(sel Selection, days int) (Daily, error)
}

// Compare runs the comparator for the card against its budget.
func (c CardInput) Compare() (kpi.Comparison, error) {
	return kpi.Compare(c.Observation(), c.Budget, c.History)
}
