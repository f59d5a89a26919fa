package core

import (
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// --- Documentation Content ---

const docsMarkdownContent = `
# How to read the dashboard

Every KPI card compares the current figure against its budget.

## Variance

    variance = (value - budget) / |budget| * 100

Dividing by the absolute budget keeps the sign meaningful for metrics that are
negative, such as Net Adds: -6,100 against a budget of -5,000 is a **-22.0%**
variance, a deterioration.

A budget of zero has no variance. The card then shows **vs Budget: N/A**.

## Severity tiers

| Tier | Variance | Colour |
|---|---|---|
| Strong | 5% or more | green |
| Moderate | 2% to 5% | amber |
| Marginal | -2% to 2% | yellow |
| Adverse | below -2% | red |

The stripe on the left of each card and the cells of the daily tables use these colours.
Table cells are coloured by the percentage as displayed, rounded to one decimal, so a cell
reading +5.0% is always Strong and one reading -2.0% is always Marginal.
For metrics where lower is better (Churn, Net Churn) the arrow still shows the raw
direction, but the delta is tinted green when the figure went down.

## Figures

Values of a million or more are shown as **M**, values of a thousand or more as **K**,
rounded half away from zero to one decimal. YTD, WoW and MoM chips are supplied with the
data and shown as-is, or **N/A** when missing.

## Filters

Filters are kept in the address bar, so any view can be bookmarked. The *Last 7/30/90
Days* ranges change the length of the trend charts.

All figures are synthetic.
`

// DocsContent component for the /docs page
func DocsContent() g.Node {
	// Configure markdown parser extensions
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	htmlOutput := markdown.ToHTML([]byte(docsMarkdownContent), p, nil)

	return Main(Class("container mx-auto mt-8 mb-16 p-4"),
		Section(ID("docs"), Class("bg-white border border-zinc-200 rounded-lg shadow p-6 md:p-8 lg:p-12 prose max-w-4xl mx-auto"),
			g.Raw(string(htmlOutput)), // Use g.Raw to render the HTML string
		),
	)
}

// HTTP handler for the /docs page
func (d *Dashboard) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	PageLayout(
		"Documentation - "+siteName,
		"How variances, severity tiers and figures are computed on the dashboard.",
		Navbar("", ""),
		DocsContent(),
		FooterEl(d.Source.AsOf()),
		true,
	).Render(w)
}
