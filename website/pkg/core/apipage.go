package core

import (
	"net/http"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/sdboard/sdboard/pkg/source"
)

type apiParam struct {
	name string
	typ  string
	desc string
}

func (d *Dashboard) handleAPIPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	PageLayout(
		"API - "+siteName,
		"JSON API for the sales and distribution KPI comparator.",
		Navbar("", ""),
		APIPageContent(),
		FooterEl(d.Source.AsOf()),
		true,
	).Render(w)
}

func APIPageContent() g.Node {
	pageNames := ""
	for i, p := range source.Pages {
		if i > 0 {
			pageNames += ", "
		}
		pageNames += string(p)
	}

	return Main(Class("container mx-auto mt-10 mb-20 px-4 max-w-4xl"),
		Div(Class("mb-8"),
			H1(Class("text-2xl md:text-3xl font-bold text-zinc-900 mb-3"), g.Text("API")),
			P(Class("text-zinc-600"), g.Text("Every comparison on the dashboard is available as JSON. Errors are returned as {\"error\": \"...\"}.")),
		),

		section("Try It",
			P(Class("text-zinc-600 mb-4 text-sm"), g.Text("Compare a value against its reference.")),
			Div(Class("grid grid-cols-1 sm:grid-cols-3 gap-4 mb-4"),
				Div(
					Label(For("api-try-value"), Class("block text-sm font-medium text-zinc-600 mb-1.5"), g.Text("Value")),
					Input(ID("api-try-value"), Type("number"), g.Attr("step", "any"), Value("-6100"), Class("w-full px-3 py-2 border border-zinc-300 rounded-lg text-sm")),
				),
				Div(
					Label(For("api-try-reference"), Class("block text-sm font-medium text-zinc-600 mb-1.5"), g.Text("Reference")),
					Input(ID("api-try-reference"), Type("number"), g.Attr("step", "any"), Value("-5000"), Class("w-full px-3 py-2 border border-zinc-300 rounded-lg text-sm")),
				),
				Div(Class("flex items-end"),
					Button(ID("api-try-run"), Type("button"), Class("w-full bg-mtn-dark text-white font-semibold rounded-lg py-2 text-sm hover:bg-black"), g.Text("Compare")),
				),
			),
			Code(ID("api-try-url"), Class("block text-xs text-zinc-500 font-mono mb-2"), g.Text("/api/v1/variance?value=-6100&reference=-5000")),
			Pre(ID("api-try-output"), Class("hidden bg-zinc-900 text-zinc-100 rounded-lg p-4 text-xs overflow-x-auto")),
		),

		section("Endpoint Reference",
			apiEndpointCard("GET", "/api/v1/pages", "Lists the dashboard pages.", nil),
			apiEndpointCard("GET", "/api/v1/pages/{page}/cards", "KPI cards of a page with their variance, tier, colour and history. A card whose budget is zero has \"variance\": null and an error.", []apiParam{
				{"page", "path", pageNames},
			}),
			apiEndpointCard("GET", "/api/v1/catalogs/{name}", "Options of a chart selector.", []apiParam{
				{"name", "path", "catalog name, e.g. " + source.CatalogAirtimeMap},
			}),
			apiEndpointCard("GET", "/api/v1/variance", "Percent delta, direction and tier. A zero reference returns 422.", []apiParam{
				{"value", "float", "observed value"},
				{"reference", "float", "budget or prior value, non-zero"},
			}),
			apiEndpointCard("GET", "/api/v1/severity", "Tier and colour of a percent delta.", []apiParam{
				{"percent", "float", "percent delta"},
			}),
			apiEndpointCard("GET", "/healthz", "Liveness probe.", nil),
			apiEndpointCard("GET", "/metrics", "Prometheus metrics.", nil),
		),
		Script(g.Raw(apiPageScript)),
	)
}

func apiParamRow(name, typ, desc string) g.Node {
	return Div(Class("flex flex-wrap items-baseline gap-2 text-sm"),
		Code(Class("text-zinc-900 font-mono"), g.Text(name)),
		Span(Class("text-xs text-zinc-500"), g.Text(typ)),
		Span(Class("text-zinc-600"), g.Text(desc)),
	)
}

func apiEndpointCard(method, path, description string, params []apiParam) g.Node {
	paramNodes := []g.Node{}
	for _, p := range params {
		paramNodes = append(paramNodes, apiParamRow(p.name, p.typ, p.desc))
	}

	children := []g.Node{
		Div(Class("flex items-center gap-3 mb-2 min-w-0"),
			Span(Class("px-2 py-0.5 bg-emerald-100 text-emerald-800 border border-emerald-300 rounded text-xs font-semibold font-mono flex-shrink-0"), g.Text(method)),
			Code(Class("endpoint text-sm text-zinc-900 font-mono break-all"), g.Text(path)),
		),
		P(Class("text-sm text-zinc-600 mb-3"), g.Text(description)),
	}

	if len(paramNodes) > 0 {
		children = append(children,
			Div(Class("space-y-1.5"), g.Group(paramNodes)),
		)
	}

	return Div(Class("border-b border-zinc-200 pb-5 mb-5 last:border-0 last:pb-0 last:mb-0"),
		g.Group(children),
	)
}

const apiPageScript = `
(function() {
	const value = document.getElementById('api-try-value');
	const reference = document.getElementById('api-try-reference');
	const urlPreview = document.getElementById('api-try-url');
	const runBtn = document.getElementById('api-try-run');
	const output = document.getElementById('api-try-output');

	function buildURL() {
		const params = new URLSearchParams({value: value.value, reference: reference.value});
		return '/api/v1/variance?' + params.toString();
	}

	function updatePreview() {
		urlPreview.textContent = buildURL();
	}

	[value, reference].forEach(function(el) {
		el.addEventListener('input', updatePreview);
	});

	runBtn.addEventListener('click', function() {
		output.classList.remove('hidden');
		output.textContent = 'Loading...';
		fetch(buildURL())
			.then(function(r) { return r.json(); })
			.then(function(body) {
				output.textContent = JSON.stringify(body, null, 2);
			})
			.catch(function(err) {
				output.textContent = 'Error: ' + err.message;
			});
	});
})();
`
