package core

import (
	"fmt"
	"net/http"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/pkg/assets"
)

func assetRow(s assets.Status) g.Node {
	var statusBadge, took g.Node
	location := s.Location
	if location == "" {
		location = "-"
	}

	if s.Loaded {
		statusBadge = Span(Class("inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium bg-emerald-100 text-emerald-800 border border-emerald-300"), g.Text("Loaded"))
		took = Span(g.Text(s.Took.Round(time.Millisecond).String()))
	} else {
		statusBadge = Span(Class("inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium bg-red-100 text-red-800 border border-red-300"), g.Text("Fallback"))
		took = Span(Class("text-zinc-500"), g.Text(s.Error))
	}

	return Tr(Class("border-b border-zinc-200"),
		Td(Class("px-4 py-3 font-medium text-zinc-900"), g.Text(s.Name)),
		Td(Class("px-4 py-3"), statusBadge),
		Td(Class("px-4 py-3 text-zinc-500 text-sm break-all"), g.Text(location)),
		Td(Class("px-4 py-3 text-zinc-500 text-sm tabular-nums"), took),
	)
}

func (d *Dashboard) debugContent(now time.Time) g.Node {
	rows := []g.Node{}
	for _, s := range d.Assets {
		rows = append(rows, assetRow(s))
	}

	uptimeStr := formatDuration(now.Sub(d.Started).Round(time.Second))

	return Main(Class("container mx-auto mt-10 mb-20 px-4 max-w-4xl"),
		H1(Class("text-2xl md:text-3xl font-bold text-zinc-900 mb-6"), g.Text("Debug")),

		section("Server",
			Div(ID("uptime"), Class("text-sm text-zinc-600"),
				g.Text(fmt.Sprintf("Uptime: %s", uptimeStr)),
			),
			Div(Class("text-sm text-zinc-600"),
				g.Text("Report date: "+d.Source.AsOf().Format(dateFormat)),
			),
		),

		section("Assets",
			Div(Class("overflow-x-auto"),
				Table(ID("asset-status"), Class("w-full"),
					THead(
						Tr(Class("border-b border-zinc-300"),
							Th(Class("px-4 py-3 text-left text-xs font-semibold text-zinc-500 uppercase tracking-wider"), g.Text("Asset")),
							Th(Class("px-4 py-3 text-left text-xs font-semibold text-zinc-500 uppercase tracking-wider"), g.Text("Status")),
							Th(Class("px-4 py-3 text-left text-xs font-semibold text-zinc-500 uppercase tracking-wider"), g.Text("Location")),
							Th(Class("px-4 py-3 text-left text-xs font-semibold text-zinc-500 uppercase tracking-wider"), g.Text("Load time / error")),
						),
					),
					TBody(rows...),
				),
			),
		),
	)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (d *Dashboard) handleDebug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	PageLayout(
		"Debug - "+siteName,
		"Debug information",
		Navbar("", ""),
		d.debugContent(time.Now()),
		FooterEl(d.Source.AsOf()),
		true, // noindex
	).Render(w)
}
