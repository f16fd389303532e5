package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsReadHeaderTimeout = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 60 * time.Second
)

// MetricsServer serves Prometheus metrics on a dedicated address, keeping
// operational metrics off the MCP transport entirely.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
}

// NewMetricsServer creates a metrics server bound to addr.
func NewMetricsServer(addr string) *MetricsServer {
	return &MetricsServer{addr: addr}
}

// Addr returns the listen address. After Start has bound the listener this
// is the resolved address, including any kernel-assigned port.
func (s *MetricsServer) Addr() string {
	return s.addr
}

// Start listens and serves /metrics and /healthz, closing ready once the
// listener is accepting connections. Blocks until the server stops.
func (s *MetricsServer) Start(ready chan<- struct{}) error {
	mux := http.NewServeMux()
	// The OpenTelemetry prometheus exporter registers with the default
	// Prometheus registry, which promhttp.Handler() exposes.
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	slog.Info("metrics server listening", "addr", s.addr)
	if ready != nil {
		close(ready)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("shutting down metrics server")
	return s.httpServer.Shutdown(ctx)
}
