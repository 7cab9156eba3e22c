// Package server implements the local cities API: a JSON HTTP resource
// backed by the file database in internal/storage.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/storage"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Cities is the persistence the server exposes. *storage.Storage implements it.
type Cities interface {
	ListCities() ([]model.City, error)
	GetCity(id model.CityID) (model.City, error)
	CreateCity(c model.City) (model.City, error)
	DeleteCity(id model.CityID) error
}

// Server serves the cities resource plus health and metrics endpoints.
type Server struct {
	cities  Cities
	logger  *zap.Logger
	metrics *metrics
	handler http.Handler
}

// New builds the server's handler tree from cfg.
func New(cities Cities, cfg storage.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cities:  cities,
		logger:  logger,
		metrics: newMetrics(),
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 && cfg.Burst > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	limit := RateLimit(limiter)
	api := func(h http.HandlerFunc) http.Handler {
		return Chain(h, limit)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /cities", api(s.listCities))
	mux.Handle("GET /cities/{id}", api(s.getCity))
	mux.Handle("POST /cities", api(s.createCity))
	mux.Handle("DELETE /cities/{id}", api(s.deleteCity))
	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", s.metrics.handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	s.handler = corsHandler.Handler(Chain(mux,
		RequestID(),
		AccessLog(logger, s.metrics),
		Recover(logger),
	))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// letting in-flight requests finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("cities API listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down cities API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
