package core

import (
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/pkg/source"
)

// Filter options shown in the left panel.
var (
	DateRanges = []string{"MTD", "QTD", "YTD", "Last 7 Days", "Last 30 Days", "Last 90 Days", "Custom"}
	Channels   = []string{"All Channels", "YC (Yellow Centers)", "DTC (MTN Shops)", "DTR (Dealers)", "Digital"}
	Tiers      = []string{"All Tiers", "Gold", "Silver", "Bronze", "Inactive"}
)

const allRegions = "All Regions"

// Filters is the state of the filter panel and the chart selectors, carried in the
// query string. Filters are echoed back; only the "Last N Days" ranges change what
// the trend charts show.
type Filters struct {
	Date    string
	From    string
	To      string
	Region  string
	Channel string
	Tier    string
	Export  bool
	// Selections maps a catalog name to the chosen key.
	Selections map[string]string
}

func pick(v, def string, options []string) string {
	if slices.Contains(options, v) {
		return v
	}
	return def
}

func validDate(s string) string {
	if _, err := time.Parse(dateFormat, s); err != nil {
		return ""
	}
	return s
}

// ParseFilters reads the filter state from a query string. Unknown values fall back
// to the first option.
func ParseFilters(q url.Values) Filters {
	f := Filters{
		Date:       pick(q.Get("date"), DateRanges[0], DateRanges),
		Region:     pick(q.Get("region"), allRegions, append([]string{allRegions}, source.Regions...)),
		Channel:    pick(q.Get("channel"), Channels[0], Channels),
		Tier:       pick(q.Get("tier"), Tiers[0], Tiers),
		Export:     q.Get("export") != "",
		Selections: map[string]string{},
	}
	if f.Date == "Custom" {
		f.From = validDate(q.Get("from"))
		f.To = validDate(q.Get("to"))
	}
	for k, v := range q {
		if _, err := source.LookupCatalog(k); err == nil && len(v) > 0 {
			f.Selections[k] = v[0]
		}
	}
	return f
}

// Days returns the trend length implied by the date range, or 0 for the catalog default.
func (f Filters) Days() int {
	switch f.Date {
	case "Last 7 Days":
		return 7
	case "Last 30 Days":
		return 30
	case "Last 90 Days":
		return 90
	}
	return 0
}

// Selected returns the chosen key of c, falling back to its first option.
func (f Filters) Selected(c source.Catalog) source.Descriptor {
	if d, err := c.Lookup(f.Selections[c.Name]); err == nil {
		return d
	}
	return c.Default()
}

// Values encodes the non-default state. The export flag is never carried over.
func (f Filters) Values() url.Values {
	v := url.Values{}
	set := func(k, val, def string) {
		if val != "" && val != def {
			v.Set(k, val)
		}
	}
	set("date", f.Date, DateRanges[0])
	set("from", f.From, "")
	set("to", f.To, "")
	set("region", f.Region, allRegions)
	set("channel", f.Channel, Channels[0])
	set("tier", f.Tier, Tiers[0])
	for k, sel := range f.Selections {
		v.Set(k, sel)
	}
	return v
}

// Query returns Values as "?..." or "" when everything is default.
func (f Filters) Query() string {
	v := f.Values()
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func sortedKeys(v url.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dateRangeTabs renders pill-style date range tabs.
func dateRangeTabs(path string, f Filters) g.Node {
	tabs := []g.Node{}
	for _, r := range DateRanges {
		isActive := f.Date == r
		next := f
		next.Date = r
		if r != "Custom" {
			next.From, next.To = "", ""
		}
		href := path + next.Query()

		classes := "px-2 py-1 text-xs font-semibold rounded-md transition-all duration-200 "
		if isActive {
			classes += "bg-mtn-yellow text-black shadow"
		} else {
			classes += "bg-zinc-100 text-zinc-600 hover:bg-zinc-200 border border-zinc-200"
		}

		tabs = append(tabs, A(Href(href), Class(classes), g.Text(r)))
	}

	return Div(Class("flex flex-wrap gap-1 mb-3"), g.Group(tabs))
}

func filterSelect(id, name, current string, options []string) g.Node {
	opts := []g.Node{}
	for _, o := range options {
		opts = append(opts, Option(Value(o), g.Text(o), g.If(o == current, Selected())))
	}
	return Select(ID(id), Name(name), Class("w-full border border-zinc-300 rounded-md px-2 py-1 text-sm mb-3"), g.Group(opts))
}

func filterLabel(forID, text string) g.Node {
	return Label(For(forID), Class("block text-xs uppercase tracking-wider text-zinc-500 font-semibold mb-1"), g.Text(text))
}

// filterPanel is the left column: date range, region, channel and tier, plus the
// Home and Export buttons.
func filterPanel(path string, f Filters) g.Node {
	selections := url.Values{}
	for k, v := range f.Selections {
		selections.Set(k, v)
	}

	customClass := "grid grid-cols-2 gap-2 mb-3"
	if f.Date != "Custom" {
		customClass += " hidden"
	}

	exportHref := path + "?" + withParam(f.Values(), "export", "1").Encode()

	return Aside(ID("filters"), Class("bg-white border border-zinc-200 rounded-xl shadow-sm p-4 h-fit"),
		H2(Class("text-sm font-extrabold uppercase tracking-wider text-zinc-900 mb-4"), g.Text("Filters")),
		filterLabel("filter-date", "Date Range"),
		dateRangeTabs(path, f),
		Form(Method("get"), Action(path),
			g.Group(hiddenInputs(selections, "")),
			filterSelect("filter-date", "date", f.Date, DateRanges),
			Div(ID("custom-range"), Class(customClass),
				Input(Type("date"), Name("from"), Value(f.From), Class("border border-zinc-300 rounded-md px-1 py-1 text-xs"), g.Attr("aria-label", "From")),
				Input(Type("date"), Name("to"), Value(f.To), Class("border border-zinc-300 rounded-md px-1 py-1 text-xs"), g.Attr("aria-label", "To")),
			),
			filterLabel("filter-region", "Region"),
			filterSelect("filter-region", "region", f.Region, append([]string{allRegions}, source.Regions...)),
			filterLabel("filter-channel", "Channel"),
			filterSelect("filter-channel", "channel", f.Channel, Channels),
			filterLabel("filter-tier", "Agent Tier"),
			filterSelect("filter-tier", "tier", f.Tier, Tiers),
			Button(Type("submit"), Class("w-full bg-mtn-dark text-white font-semibold rounded-md py-2 text-sm hover:bg-black"), g.Text("Apply")),
		),
		Div(Class("grid grid-cols-2 gap-2 mt-4"),
			A(ID("home-button"), Href("/"), Class("text-center bg-zinc-100 border border-zinc-300 rounded-md py-2 text-sm font-semibold hover:bg-zinc-200"), g.Text("Home")),
			A(ID("export-button"), Href(exportHref), Class("text-center bg-mtn-yellow rounded-md py-2 text-sm font-semibold hover:brightness-95"), g.Text("Export")),
		),
		activeFilters(f),
	)
}

func withParam(v url.Values, k, val string) url.Values {
	out := url.Values{}
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	out.Set(k, val)
	return out
}

// activeFilters echoes the panel state as a summary line.
func activeFilters(f Filters) g.Node {
	parts := []string{f.Date}
	if f.Date == "Custom" && f.From != "" && f.To != "" {
		parts[0] = f.From + " to " + f.To
	}
	parts = append(parts, f.Region, f.Channel, f.Tier)
	return P(ID("active-filters"), Class("text-xs text-zinc-500 mt-4"), g.Text(strings.Join(parts, " · ")))
}
