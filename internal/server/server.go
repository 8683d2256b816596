// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the paper pipeline over HTTP for the web UI:
// search sessions, paper generation, history, and status, plus a cron
// sweep that expires stale session stores.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fakepaperia/fakepaperia/internal/vectorstore"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// Server bundles the HTTP listener with the session-expiry cron job.
type Server struct {
	httpServer *http.Server
	cron       *cron.Cron
	storeDir   string
	maxAge     time.Duration
	logw       io.Writer
}

// New builds the server from its configuration and pipeline
// dependencies. The expiry schedule uses cron syntax ("@hourly" by
// default) and sweeps the session store directory.
func New(cfg types.ServerConfig, storeCfg types.VectorStoreConfig, deps Deps, logw io.Writer) (*Server, error) {
	handlers := newHandlers(storeCfg.Dir, deps, logw)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", handlers.handleSearch)
	mux.HandleFunc("/api/generate", handlers.handleGenerate)
	mux.HandleFunc("/api/history", handlers.handleHistory)
	mux.HandleFunc("/api/status", handlers.handleStatus)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	s := &Server{
		httpServer: &http.Server{
			Addr:    cfg.Addr,
			Handler: mux,
		},
		storeDir: storeCfg.Dir,
		maxAge:   storeCfg.MaxAge,
		logw:     logw,
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.ExpirySchedule, s.expireSessions); err != nil {
		return nil, fmt.Errorf("registering expiry schedule %q: %w", cfg.ExpirySchedule, err)
	}
	s.cron = c

	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the cron scheduler and serves HTTP until the
// listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.cron.Start()
	log.Printf("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the cron scheduler and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) expireSessions() {
	removed, err := vectorstore.Expire(s.storeDir, s.maxAge, s.logw)
	if err != nil {
		fmt.Fprintf(s.logw, "warning: session expiry failed: %v\n", err)
		return
	}
	if removed > 0 {
		fmt.Fprintf(s.logw, "expired %d session artifact(s)\n", removed)
	}
}
