// Package server delivers the generated timeline assets over HTTP. It is
// a thin static file server: no roadmap logic lives here.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Config holds the server's listen address and document root.
type Config struct {
	Addr string // e.g. ":8080"
	Root string // directory holding the generated HTML
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	cfg  Config
	http *http.Server
}

// New builds a Server serving static files from cfg.Root plus a small
// JSON health endpoint at /healthz.
func New(cfg Config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(cfg.Root)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully with a
// short drain window.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }
