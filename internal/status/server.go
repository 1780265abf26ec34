// Package status exposes a local debug HTTP server with health, status
// and metrics endpoints for a running btw process.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// DefaultAddr is where the debug server listens when no address is
// configured. Loopback only: the endpoints are for local inspection.
const DefaultAddr = "127.0.0.1:9093"

const shutdownTimeout = 5 * time.Second

// SessionInfo describes the resolved session the server reports on.
type SessionInfo struct {
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	ProjectFile string   `json:"project_file,omitempty"`
	Tools       []string `json:"tools"`
}

// Server is the debug HTTP server.
type Server struct {
	addr    string
	version string
	session SessionInfo
	metrics *Metrics
	logger  *slog.Logger

	server    *http.Server
	startedAt time.Time
}

// NewServer builds a debug server. An empty addr falls back to DefaultAddr.
func NewServer(addr, version string, session SessionInfo, metrics *Metrics, logger *slog.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr:    addr,
		version: version,
		session: session,
		metrics: metrics,
		logger:  logger,
	}
}

// buildRouter constructs the chi mux with all routes wired.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz())
	r.Get("/status", s.handleStatus())
	r.Handle("/metrics", s.metrics.Handler())
	return r
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	s.startedAt = time.Now()

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.buildRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", s.addr)
	if err != nil {
		return errors.New("status: listen failed: " + err.Error())
	}

	go func() {
		s.logger.Info("debug server listening", "addr", s.addr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("debug server error", "error", err)
		}
	}()

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("debug server shutting down")
	return s.server.Shutdown(shutdownCtx)
}

// HealthResponse is the JSON response for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}
}

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Version string          `json:"version"`
	Uptime  int64           `json:"uptime_seconds"`
	Session SessionInfo     `json:"session"`
	Metrics MetricsSnapshot `json:"metrics"`
}

func (s *Server) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			Version: s.version,
			Uptime:  int64(time.Since(s.startedAt).Seconds()),
			Session: s.session,
			Metrics: s.metrics.Snapshot(),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
