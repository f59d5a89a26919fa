package core

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/sdboard/sdboard/internal/metrics"
	"github.com/sdboard/sdboard/internal/server"
	"github.com/sdboard/sdboard/internal/utils"
	"github.com/sdboard/sdboard/pkg/assets"
	"github.com/sdboard/sdboard/pkg/source"
	"github.com/sdboard/sdboard/pkg/whttp"
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogoLocation    string
	GeoJSONLocation string
	Seed            uint64
	// AsOf is the report date; zero means today.
	AsOf time.Time
	// AssetRetries and AssetTimeout apply to remote asset locations.
	AssetRetries int
	AssetTimeout time.Duration
}

// LoadAssets loads the logo and boundaries into d. A failed load leaves the field
// nil so pages fall back to placeholders; only the status is kept.
func (d *Dashboard) LoadAssets(ctx context.Context, loader *assets.Loader, logoLocation, geoJSONLocation string) {
	start := time.Now()
	logo, err := loader.LoadLogo(ctx, logoLocation)
	d.Assets = append(d.Assets, assetStatus("logo", logoLocation, time.Since(start), err))
	if err == nil {
		d.Logo = &logo
	}

	start = time.Now()
	b, err := loader.LoadBoundaries(ctx, geoJSONLocation)
	d.Assets = append(d.Assets, assetStatus("geojson", geoJSONLocation, time.Since(start), err))
	if err == nil {
		d.Boundaries = b
		if missing := b.Unmatched(source.Regions); len(missing) > 0 {
			utils.Log.WithField("regions", missing).Warn("Boundary file has no feature for some regions")
		}
	}
}

func assetStatus(name, location string, took time.Duration, err error) assets.Status {
	fields := logrus.Fields{"asset": name, "location": location}
	switch {
	case errors.Is(err, assets.ErrNotConfigured):
		utils.Log.WithFields(fields).Info("Asset not configured, using placeholder")
	case err != nil:
		utils.Log.WithFields(fields).WithError(err).Warn("Failed to load asset, using placeholder")
	default:
		utils.Log.WithFields(fields).WithField("took", took).Debug("Asset loaded")
	}
	return assets.NewStatus(name, location, took, err)
}

// NewHandler builds the full route table: pages, debug, JSON API, health and metrics.
func NewHandler(d *Dashboard, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	server.New(d.Source, d.Metrics, reg).Register(mux)
	d.Register(mux)
	return server.Wrap(mux)
}

// Run serves the dashboard until ctx is cancelled.
func Run(ctx context.Context, cfg ServerConfig) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	asOf := cfg.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	d := &Dashboard{
		Source:  source.NewSample(cfg.Seed, asOf),
		Metrics: metrics.New(reg),
		Started: time.Now(),
	}

	loader := assets.NewLoader(whttp.NewClient(cfg.AssetRetries, cfg.AssetTimeout, utils.Log))
	d.LoadAssets(ctx, loader, cfg.LogoLocation, cfg.GeoJSONLocation)

	utils.Log.WithFields(logrus.Fields{
		"listen": cfg.ListenAddr,
		"seed":   cfg.Seed,
		"as_of":  d.Source.AsOf().Format(dateFormat),
	}).Info("Starting dashboard")

	srv := server.NewHTTPServer(cfg.ListenAddr, NewHandler(d, reg))
	return server.Serve(ctx, srv, cfg.ShutdownTimeout)
}
