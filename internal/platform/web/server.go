// Package web serves rendered frames over HTTP: single encoded frames and
// a websocket stream of PNG frames.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/logging"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Runtime supplies the default frame size, tick rate and palette.
	Runtime core.RuntimeConfig

	Logger *log.Logger
}

// Server is the HTTP host.
type Server struct {
	config Config
	router *mux.Router
	server *http.Server
	logger *log.Logger
}

// NewServer creates the server and registers its routes.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	s := &Server{
		config: cfg,
		router: mux.NewRouter(),
		logger: cfg.Logger,
	}
	s.routes()

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.recovery)
	s.router.Use(s.requestLogger)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/scenes", s.handleScenes).Methods(http.MethodGet)
	s.router.HandleFunc("/scenes/{id}/frame.{format}", s.handleFrame).Methods(http.MethodGet)
	s.router.HandleFunc("/scenes/{id}/stream", s.handleStream).Methods(http.MethodGet)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}

// ListenAndServe serves until ctx is cancelled or the listener fails,
// then shuts down gracefully. Open websocket streams end with ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server.BaseContext = func(_ net.Listener) context.Context { return ctx }

	s.logger.Info("starting HTTP server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
