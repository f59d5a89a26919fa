// Package metrics provides Prometheus instrumentation for the dashboard.
//
// Metrics exposed:
//   - sdboard_page_renders_total: Counter of rendered pages by page
//   - sdboard_render_seconds: Histogram of page render duration by page
//   - sdboard_undefined_variances_total: Counter of comparisons against a zero reference, by page
//   - sdboard_asset_fallbacks_total: Counter of placeholder renders caused by a missing asset
//   - sdboard_api_requests_total: Counter of API requests by route and status code
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	PageRenders        *prometheus.CounterVec
	RenderSeconds      *prometheus.HistogramVec
	UndefinedVariances *prometheus.CounterVec
	AssetFallbacks     *prometheus.CounterVec
	APIRequests        *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PageRenders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sdboard_page_renders_total",
			Help: "Total number of dashboard pages rendered",
		}, []string{"page"}),

		RenderSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sdboard_render_seconds",
			Help:    "Time spent rendering a dashboard page",
			Buckets: prometheus.DefBuckets,
		}, []string{"page"}),

		UndefinedVariances: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sdboard_undefined_variances_total",
			Help: "Comparisons rendered as N/A because the reference was zero",
		}, []string{"page"}),

		AssetFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sdboard_asset_fallbacks_total",
			Help: "Renders that fell back to a placeholder because an asset was unavailable",
		}, []string{"asset"}),

		APIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sdboard_api_requests_total",
			Help: "Total number of API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// RecordRender records one page render and its duration.
func (m *Metrics) RecordRender(page string, seconds float64) {
	if m == nil {
		return
	}
	m.PageRenders.WithLabelValues(page).Inc()
	m.RenderSeconds.WithLabelValues(page).Observe(seconds)
}

// RecordUndefinedVariance counts a comparison that could not be computed.
func (m *Metrics) RecordUndefinedVariance(page string) {
	if m == nil {
		return
	}
	m.UndefinedVariances.WithLabelValues(page).Inc()
}

// RecordAssetFallback counts a placeholder render for asset.
func (m *Metrics) RecordAssetFallback(asset string) {
	if m == nil {
		return
	}
	m.AssetFallbacks.WithLabelValues(asset).Inc()
}

// RecordAPIRequest counts one API response.
func (m *Metrics) RecordAPIRequest(route, code string) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(route, code).Inc()
}
