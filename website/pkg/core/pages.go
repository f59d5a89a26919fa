package core

import (
	"net/http"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/internal/metrics"
	"github.com/sdboard/sdboard/internal/utils"
	"github.com/sdboard/sdboard/pkg/assets"
	"github.com/sdboard/sdboard/pkg/source"
)

const exportNotice = "Export functionality is not available in this build."

// Dashboard renders the HTML pages. Everything it holds is built at start-up and
// only read while serving.
type Dashboard struct {
	Source source.MetricsSource
	// Logo and Boundaries are nil when their asset failed to load.
	Logo       *assets.Logo
	Boundaries *assets.Boundaries
	Metrics    *metrics.Metrics
	Assets     []assets.Status
	Started    time.Time
}

// Register mounts the dashboard pages and the debug, API reference and docs pages on mux.
func (d *Dashboard) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", d.handlePage)
	mux.HandleFunc("GET /page/{page}", d.handlePage)
	mux.HandleFunc("GET /debug", d.handleDebug)
	mux.HandleFunc("GET /api", d.handleAPIPage)
	mux.HandleFunc("GET /docs", d.handleDocs)
}

func (d *Dashboard) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")
	if slug == "" {
		slug = string(source.PageOverview)
	}
	page, err := source.ParsePage(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Render(page, ParseFilters(r.URL.Query())).Render(w); err != nil {
		utils.Log.WithError(err).WithField("page", page).Error("Failed to render page")
		return
	}
	d.Metrics.RecordRender(string(page), time.Since(start).Seconds())
}

// Render builds the full document for page.
func (d *Dashboard) Render(page source.Page, f Filters) g.Node {
	if d.Logo == nil {
		d.Metrics.RecordAssetFallback("logo")
	}
	path := pagePath(page)
	asOf := d.Source.AsOf()

	body := []g.Node{
		H2(Class("text-xl font-extrabold text-zinc-900 mb-4"), g.Text(page.Title())),
	}
	if f.Export {
		body = append(body, notice(exportNotice))
	}
	body = append(body, d.pageBody(page, path, f)...)

	return PageLayout(
		page.Title()+" - "+siteName,
		"Sales and distribution KPIs: "+page.Title(),
		Navbar(page, f.Query()),
		Main(Class("container mx-auto mt-6 mb-16 px-4"),
			header(d.Logo, asOf),
			Div(Class("grid lg:grid-cols-[240px_1fr] gap-6"),
				filterPanel(path, f),
				Div(ID("page-"+string(page)), g.Group(body)),
			),
		),
		FooterEl(asOf),
		true,
	)
}

func (d *Dashboard) pageBody(page source.Page, path string, f Filters) []g.Node {
	switch page {
	case source.PageOverview:
		return []g.Node{
			cardGrid(page, d.Source.Cards(page), d.Metrics),
			twoColumns(
				d.trendSection(path, f, source.CatalogOverviewTrend),
				d.trendSection(path, f, source.CatalogOverviewPair),
			),
			d.regionalSection(path, f, source.CatalogOverviewMap),
			twoColumns(
				d.breakdownSection("Channel Mix", source.BreakdownChannelMix, donut),
				d.breakdownSection("Market Share", source.BreakdownMarketShare, donut),
			),
			d.dailySection(path, f, source.CatalogOverviewDaily),
		}
	case source.PageAirtime:
		return []g.Node{
			cardGrid(page, d.Source.Cards(page), d.Metrics),
			d.trendSection(path, f, source.CatalogAirtimeTrend),
			twoColumns(
				d.regionalSection(path, f, source.CatalogAirtimeMap),
				d.breakdownSection("Airtime Sales by Channel (M XOF)", source.BreakdownChannelAirtime, bars("Sales (M XOF)")),
			),
			d.dailySection(path, f, source.CatalogAirtimeDaily),
		}
	case source.PageFloat:
		return []g.Node{
			tileGrid(d.Source.Tiles(page)),
			d.trendSection(path, f, source.CatalogFloatTrend),
			d.breakdownSection("Float by Channel", source.BreakdownChannelMix, donut),
		}
	case source.PageAgents:
		return []g.Node{
			tileGrid(d.Source.Tiles(page)),
			twoColumns(
				d.breakdownSection("Agents by Tier", source.BreakdownTierCount, bars("Agents")),
				d.breakdownSection("Productivity by Tier", source.BreakdownTierProductivity, bars("Productivity Score")),
			),
		}
	case source.PagePerformance:
		return []g.Node{
			tileGrid(d.Source.Tiles(page)),
			twoColumns(
				d.breakdownSection("Revenue by Tier (M XOF)", source.BreakdownTierRevenue, bars("Revenue (M XOF)")),
				d.breakdownSection("Agent Tier Distribution", source.BreakdownTierCount, donut),
			),
		}
	case source.PageAcquisition:
		return []g.Node{
			cardGrid(page, d.Source.Cards(page), d.Metrics),
			d.trendSection(path, f, source.CatalogAcquisitionTrend),
			twoColumns(
				d.regionalSection(path, f, source.CatalogAcquisitionMap),
				d.breakdownSection("Gross Adds by Channel", source.BreakdownChannelGrossAdds, donut),
			),
			d.dailySection(path, f, source.CatalogAcquisitionDaily),
		}
	case source.PageConversion:
		return []g.Node{
			cardGrid(page, d.Source.Cards(page), d.Metrics),
			d.trendSection(path, f, source.CatalogConversionTrend),
			d.breakdownSection("Conversion Mix (%)", source.BreakdownConversionMix, donut),
			d.dailySection(path, f, source.CatalogConversionDaily),
		}
	}
	return nil
}

func twoColumns(left, right g.Node) g.Node {
	return Div(Class("grid xl:grid-cols-2 gap-6"), left, right)
}
