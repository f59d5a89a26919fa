package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sdboard/sdboard/internal/metrics"
	"github.com/sdboard/sdboard/internal/utils"
	"github.com/sdboard/sdboard/pkg/source"
)

// Server serves the JSON API on top of a metrics source.
type Server struct {
	Source   source.MetricsSource
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func New(src source.MetricsSource, m *metrics.Metrics, g prometheus.Gatherer) *Server {
	return &Server{
		Source:   src,
		Metrics:  m,
		Gatherer: g,
	}
}

// Register mounts the API, health and metrics routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/pages", s.counted("pages", s.handlePages))
	mux.HandleFunc("GET /api/v1/pages/{page}/cards", s.counted("cards", s.handleCards))
	mux.HandleFunc("GET /api/v1/catalogs/{name}", s.counted("catalog", s.handleCatalog))
	mux.HandleFunc("GET /api/v1/variance", s.counted("variance", s.handleVariance))
	mux.HandleFunc("GET /api/v1/severity", s.counted("severity", s.handleSeverity))
	mux.HandleFunc("GET /healthz", handleHealth)

	if s.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
}

// Handler returns the API wrapped in logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return Wrap(mux)
}

// Wrap applies the standard middleware chain to h.
func Wrap(h http.Handler) http.Handler {
	return RecoveryMiddleware(LoggingMiddleware(h))
}

// HTTPServer wraps http.Server with graceful shutdown.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer creates a server listening on addr.
func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start serves until Stop is called.
func (s *HTTPServer) Start() error {
	utils.Log.WithField("addr", s.server.Addr).Info("Starting HTTP server")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop waits up to timeout for active connections to finish.
func (s *HTTPServer) Stop(timeout time.Duration) error {
	utils.Log.WithField("timeout", timeout).Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	utils.Log.Info("HTTP server stopped gracefully")
	return nil
}

// Serve runs srv until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, srv *HTTPServer, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Stop(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}
