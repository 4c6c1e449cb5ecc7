package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/bootstrap"
	"github.com/yigit/uniconnect/internal/config"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	store  *bootstrap.Store
	logger zerolog.Logger
	http   *http.Server
	// stop ends background workers such as the identity hub.
	stop context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())

	store, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, store.Repos, lgr)
	if err != nil {
		stop()
		store.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps, lgr),
		store:  store,
		logger: lgr,
		stop:   stop,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 10*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 10*time.Second),
		IdleTimeout:  2 * time.Minute,
	}

	sigCtx, release := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer release()

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("store", s.store.Driver).Msg("UniConnect API listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		}
	case <-sigCtx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	return errors.Join(runErr, s.Shutdown(context.Background()))
}

// Shutdown drains HTTP connections for up to 10s, stops the identity hub and
// closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		if err = s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server did not drain cleanly")
			err = fmt.Errorf("http shutdown: %w", err)
		}
	}
	if s.stop != nil {
		s.stop()
	}
	if s.store != nil {
		s.store.Close()
	}

	s.logger.Info().Err(err).Msg("Server stopped")
	return err
}
