package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/packwise/loadout/internal/api"
	"github.com/packwise/loadout/internal/config"
	"github.com/packwise/loadout/internal/solver"
	"github.com/packwise/loadout/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   storage.Store
	solver  solver.Solver
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStore()
	if cfg.RulesFile != "" {
		rules, err := storage.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load synergy rules: %w", err)
		}
		if err := store.SetRules(rules); err != nil {
			return nil, fmt.Errorf("failed to apply synergy rules: %w", err)
		}
		logger.Info("synergy rules loaded", zap.String("file", cfg.RulesFile), zap.Int("rules", len(rules)))
	}

	s := solver.New()
	handler := api.NewHandler(s, store, api.WithMaxItems(cfg.MaxItems))
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		store:   store,
		solver:  s,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}, nil
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
