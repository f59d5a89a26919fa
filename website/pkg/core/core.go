package core

import (
	"fmt"
	"net/url"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" // Using . import for convenience with html tags

	"github.com/sdboard/sdboard/pkg/assets"
	"github.com/sdboard/sdboard/pkg/source"
)

const (
	siteName     = "Executive Dashboard | Sales & Distribution"
	chartJSURL   = "https://cdn.jsdelivr.net/npm/chart.js@4/dist/chart.umd.min.js"
	chartGeoURL  = "https://cdn.jsdelivr.net/npm/chartjs-chart-geo@4/build/index.umd.min.js"
	dateFormat   = "2006-01-02"
	reportFormat = "02 Jan 2006"
)

// pagePath returns the URL of a tab.
func pagePath(p source.Page) string {
	if p == source.PageOverview {
		return "/"
	}
	return "/page/" + string(p)
}

// Page layout component
func PageLayout(title, description string, navbar g.Node, content g.Node, footer g.Node, shouldNoIndex bool) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(Lang("en"),
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				Meta(Name("description"), Content(description)),
				TitleEl(g.Text(title)), // Using TitleEl to avoid conflict
				Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
				Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), g.Attr("crossorigin", "")),
				Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800&display=swap")),
				Script(Src("https://cdn.tailwindcss.com")),
				Script(g.Raw(`tailwind.config={theme:{extend:{fontFamily:{sans:['Inter','ui-sans-serif','system-ui','sans-serif']},colors:{'mtn-yellow':'#FFCB05','mtn-dark':'#1A1A1A','mtn-gray':'#4A4A4A'}}}}`)),
				Script(Src(chartJSURL)),
				Script(Src(chartGeoURL)),
				g.If(shouldNoIndex,
					Meta(Name("robots"), Content("noindex, nofollow")),
				),
				StyleEl(g.Raw(`
					::selection { background: #FFCB05; color: #000; }
					a:focus-visible, button:focus-visible, input:focus-visible, select:focus-visible {
						outline: 2px solid #FFCB05;
						outline-offset: 2px;
					}
					::-webkit-scrollbar { width: 8px; height: 8px; }
					::-webkit-scrollbar-track { background: #f4f4f5; border-radius: 10px; }
					::-webkit-scrollbar-thumb { background: #a1a1aa; border-radius: 10px; }
				`)),
			),
			Body(Class("bg-zinc-100 font-sans antialiased leading-normal tracking-tight flex flex-col min-h-screen text-zinc-800"),
				navbar,
				Div(Class("flex-grow"), content), // Ensure content pushes footer down
				footer,
				Script(g.Raw(`
					// Mobile menu toggle
					const mobileMenuButton = document.getElementById('mobile-menu-button');
					const mobileMenu = document.getElementById('mobile-menu');
					if (mobileMenuButton && mobileMenu) {
						mobileMenuButton.addEventListener('click', () => {
							const isExpanded = mobileMenuButton.getAttribute('aria-expanded') === 'true';
							mobileMenuButton.setAttribute('aria-expanded', String(!isExpanded));
							mobileMenu.classList.toggle('hidden');
						});
					}
					// Custom range inputs only make sense for the Custom option
					const dateRange = document.getElementById('filter-date');
					const customRange = document.getElementById('custom-range');
					if (dateRange && customRange) {
						dateRange.addEventListener('change', () => {
							customRange.classList.toggle('hidden', dateRange.value !== 'Custom');
						});
					}
				`)),
			),
		),
	})
}

// Navbar renders the seven dashboard tabs. query is appended to every link so the
// filter panel survives tab changes.
func Navbar(current source.Page, query string) g.Node {
	navLink := func(p source.Page) g.Node {
		href := pagePath(p) + query
		base := "block text-center md:inline-block transition-all duration-200 px-3 py-2 rounded-md text-sm font-semibold "
		if p == current {
			base += "text-black bg-mtn-yellow"
		} else {
			base += "text-zinc-300 hover:text-white hover:bg-zinc-800"
		}
		return A(Href(href), Class(base), g.Text(p.Title()))
	}

	links := []g.Node{}
	for _, p := range source.Pages {
		links = append(links, navLink(p))
	}

	return Nav(Class("bg-mtn-dark text-white p-4 shadow-lg sticky top-0 z-50 border-b-4 border-mtn-yellow"),
		Div(Class("container mx-auto flex justify-between items-center"),
			A(Href("/"), Class("text-lg font-extrabold tracking-tight text-mtn-yellow"), g.Text("S&D Dashboard")),

			// Mobile Menu Button (Hamburger)
			Div(Class("md:hidden"),
				Button(
					ID("mobile-menu-button"),
					Type("button"),
					Class("inline-flex items-center justify-center p-2 rounded-md text-zinc-300 hover:text-white hover:bg-zinc-700"),
					g.Attr("aria-controls", "mobile-menu"),
					g.Attr("aria-expanded", "false"),
					Span(Class("sr-only"), g.Text("Open main menu")),
					g.Raw(`<svg class="block h-6 w-6" xmlns="http://www.w3.org/2000/svg" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 6h16M4 12h16M4 18h16" /></svg>`),
				),
			),

			Div(
				ID("mobile-menu"),
				Class("hidden md:flex md:items-center md:space-x-1 w-full md:w-auto absolute md:relative top-16 left-0 md:top-auto md:left-auto bg-mtn-dark md:bg-transparent py-3 md:py-0"),
				g.Group(links),
			),
		),
	)
}

// header shows the logo, or a text placeholder when none was loaded, with the
// title and report date.
func header(logo *assets.Logo, asOf time.Time) g.Node {
	var brand g.Node
	if logo != nil {
		brand = Img(Class("h-14 w-auto"), Src(logo.DataURI), Alt("MTN logo"))
	} else {
		brand = Div(ID("logo-placeholder"),
			Class("h-14 w-14 rounded-full bg-mtn-yellow text-black font-extrabold flex items-center justify-center"),
			g.Text("MTN"),
		)
	}

	return Header(Class("bg-mtn-yellow rounded-xl shadow px-6 py-4 mb-6 flex items-center gap-4"),
		brand,
		Div(
			H1(Class("text-2xl md:text-3xl font-extrabold text-black"), g.Text(siteName)),
			P(ID("report-date"), Class("text-sm text-zinc-800"),
				g.Text("Report date: "+asOf.Format(reportFormat)),
			),
		),
	)
}

// FooterEl component (using El suffix to avoid conflict with html.Footer)
func FooterEl(asOf time.Time) g.Node {
	return Footer(Class("bg-mtn-dark text-zinc-400 mt-auto"),
		Div(Class("container mx-auto px-4 py-6"),
			Div(Class("flex flex-col md:flex-row justify-between items-center gap-4 text-sm"),
				P(g.Text(fmt.Sprintf("© %d MTN Benin Sales & Distribution. Synthetic data.", asOf.Year()))),
				Div(Class("flex items-center gap-6"),
					A(Href("/docs"), Class("hover:text-mtn-yellow transition-colors duration-200"), g.Text("Docs")),
					A(Href("/api"), Class("hover:text-mtn-yellow transition-colors duration-200"), g.Text("API")),
					A(Href("/debug"), Class("hover:text-mtn-yellow transition-colors duration-200"), g.Text("Debug")),
				),
			),
		),
	)
}

// section wraps a titled block of the page.
func section(title string, children ...g.Node) g.Node {
	return Section(Class("bg-white border border-zinc-200 rounded-xl shadow-sm p-4 md:p-6 mb-6"),
		g.If(title != "", H2(Class("text-lg font-bold text-zinc-900 mb-4 border-l-4 border-mtn-yellow pl-3"), g.Text(title))),
		g.Group(children),
	)
}

// notice is an inline banner shown instead of failing the page.
func notice(text string) g.Node {
	return Div(Class("notice bg-amber-50 border border-amber-300 text-amber-800 px-4 py-3 rounded-lg mb-4 text-sm"),
		g.Text(text),
	)
}

// selector renders a catalog dropdown that resubmits the page with the new choice
// and every other parameter kept.
func selector(f Filters, path string, c source.Catalog, current string) g.Node {
	options := []g.Node{}
	for _, key := range c.Keys() {
		options = append(options, Option(Value(key), g.Text(key), g.If(key == current, Selected())))
	}
	return Form(Method("get"), Action(path), Class("mb-4"),
		g.Group(hiddenInputs(f.Values(), c.Name)),
		Label(For("sel-"+c.Name), Class("text-xs uppercase tracking-wider text-zinc-500 font-semibold mr-2"), g.Text("Select KPI")),
		Select(ID("sel-"+c.Name), Name(c.Name), g.Attr("onchange", "this.form.submit()"),
			Class("border border-zinc-300 rounded-md px-2 py-1 text-sm"),
			g.Group(options),
		),
	)
}

func hiddenInputs(v url.Values, except string) []g.Node {
	nodes := []g.Node{}
	for _, k := range sortedKeys(v) {
		if k == except {
			continue
		}
		for _, val := range v[k] {
			nodes = append(nodes, Input(Type("hidden"), Name(k), Value(val)))
		}
	}
	return nodes
}
