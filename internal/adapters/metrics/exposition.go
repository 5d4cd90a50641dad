package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the global registry over HTTP for Prometheus scraping
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer builds the exposition server. The registry must be initialized
// before the first scrape.
func NewServer(host string, port int, path string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves the endpoint in the background
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics endpoint listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics endpoint failed", "error", err)
		}
	}()
}

// Stop shuts the endpoint down gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
