package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eugenenazirov/cloakroom/internal/api"
	"github.com/eugenenazirov/cloakroom/internal/attendant"
	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
	"github.com/eugenenazirov/cloakroom/internal/config"
	"github.com/eugenenazirov/cloakroom/internal/metrics"
	"github.com/eugenenazirov/cloakroom/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	room      *cloakroom.Cloakroom
	attendant *attendant.Attendant
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	room, err := cloakroom.New(cfg.NumLockers, cfg.MaxItemsPerLocker)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloakroom: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	desk := attendant.New(room, storage.NewMemoryKeyStore(), logger, attendant.WithMetrics(m))
	handler := api.NewHandler(desk)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithMetrics(m),
	)

	rootHandler := BuildRootHandler(apiRouter, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &App{
		room:      room,
		attendant: desk,
		logger:    logger,
		server:    NewServer(cfg, rootHandler),
	}, nil
}

// BuildRootHandler routes API traffic and exposes metrics at /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("GET /metrics", metricsHandler)
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	a.logger.Info("cloakroom open",
		zap.Int("lockers", a.room.NumLockers()),
		zap.Int("max_items_per_locker", a.room.MaxItemsPerLocker()),
	)
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Attendant returns the service that runs the cloakroom.
func (a *App) Attendant() *attendant.Attendant {
	return a.attendant
}
