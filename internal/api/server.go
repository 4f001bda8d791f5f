package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"restaurant-api/internal/api/handlers"
	"restaurant-api/internal/api/middleware"
	"restaurant-api/internal/api/utils"
	"restaurant-api/internal/config"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/metrics"
	"restaurant-api/internal/orchestration"
)

type ServerDeps struct {
	DB            *sql.DB
	Logger        logger.LoggerService
	Orchestration orchestration.RestaurantOrchestration
	Metrics       *metrics.Recorder
}

func NewServer(cfg config.Config, deps ServerDeps) (*http.Server, error) {
	handler, err := NewHandler(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              strings.TrimSpace(cfg.APIListen),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// NewHandler builds the routed and wrapped handler without binding a listener.
func NewHandler(cfg config.Config, deps ServerDeps) (http.Handler, error) {
	if err := config.ValidateListenAddr(strings.TrimSpace(cfg.APIListen)); err != nil {
		return nil, err
	}
	if deps.Orchestration == nil {
		return nil, errors.New("restaurant orchestration is required")
	}

	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	api := http.NewServeMux()
	api.Handle("GET /api/health", handlers.NewHealthHandler(deps.DB))
	handlers.NewRestaurantHandler(deps.Orchestration, log).Register(api)
	api.HandleFunc("/api/", notFoundHandler)

	var apiHandler http.Handler = api
	if token := strings.TrimSpace(cfg.BearerToken); token != "" {
		apiHandler = middleware.Auth(token, api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	// Both muxes share the request, so the innermost matched pattern is the
	// route label.
	var root http.Handler = mux
	if deps.Metrics != nil {
		root = middleware.Metrics(deps.Metrics, mux)
	}
	root = middleware.Logging(log, true, root)
	root = middleware.RequestID(root)
	return root, nil
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	utils.WriteNotFound(w, "Not found")
}
