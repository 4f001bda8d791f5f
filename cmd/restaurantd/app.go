package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"restaurant-api/internal/api"
	"restaurant-api/internal/config"
	"restaurant-api/internal/db"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/metrics"
	"restaurant-api/internal/orchestration"
	"restaurant-api/internal/platform/service"
	"restaurant-api/internal/repository"
	"restaurant-api/internal/secrets"
)

type options struct {
	configPath string
	envPath    string
}

type serverApp struct {
	opts   options
	cfg    config.Config
	logSvc logger.LoggerService
	dbConn *sql.DB
	srv    *http.Server
	errCh  chan error
}

// loadConfig layers .env, the yaml file and RESTAURANT_* variables, in that order.
func loadConfig(opts options) (config.Config, error) {
	if err := config.LoadDotEnv(opts.envPath); err != nil {
		return config.Config{}, fmt.Errorf("load env file: %w", err)
	}

	p, err := config.Path(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadOrDefault(p)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", p, err)
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyStoredPassword fills db.password from the secret store when neither a
// connection string nor a password is configured.
func applyStoredPassword(cfg *config.Config) error {
	if strings.TrimSpace(cfg.DB.ConnectionString) != "" || cfg.DB.Password != "" {
		return nil
	}
	pw, err := secrets.Get(secrets.DBPasswordKey)
	if errors.Is(err, secrets.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg.DB.Password = string(pw)
	return nil
}

func (a *serverApp) Start() error {
	bootstrapLog := logger.NewStderr()

	cfg, err := loadConfig(a.opts)
	if err != nil {
		bootstrapLog.Error("failed to load config", err)
		return err
	}
	a.cfg = cfg

	logSvc, err := logger.New(cfg)
	if err != nil {
		bootstrapLog.Error("logger init failed; using stderr", err)
		logSvc = bootstrapLog
	}
	a.logSvc = logSvc

	if err := applyStoredPassword(&cfg); err != nil {
		logSvc.Error("failed to load db password", err)
	}

	dbConn, err := db.Open(cfg, db.OptionsFor(cfg))
	if err != nil {
		logSvc.Error("db connection failed", err)
		a.Stop(context.Background())
		return err
	}
	a.dbConn = dbConn

	schema := strings.TrimSpace(cfg.Schema)
	if cfg.BootstrapSchema {
		created, err := repository.EnsureSchema(context.Background(), dbConn, schema, logSvc)
		if err != nil {
			logSvc.Error("schema bootstrap failed", err)
			a.Stop(context.Background())
			return err
		}
		if len(created) == 0 {
			logSvc.Info("schema up to date")
		}
	}

	rec := metrics.New()
	exec := db.NewExecutor(dbConn, schema, logSvc, rec)
	repo := repository.NewRestaurantRepository(exec, logSvc)

	srv, err := api.NewServer(cfg, api.ServerDeps{
		DB:            dbConn,
		Logger:        logSvc,
		Orchestration: orchestration.NewRestaurantOrchestration(repo, logSvc),
		Metrics:       rec,
	})
	if err != nil {
		logSvc.Error("server setup failed", err)
		a.Stop(context.Background())
		return err
	}
	a.srv = srv

	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- srv.ListenAndServe()
	}()

	logSvc.Info(fmt.Sprintf("restaurantd listening on %s", srv.Addr))
	return nil
}

func (a *serverApp) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logSvc.Error("shutdown error", err)
		}
	}
	if a.dbConn != nil {
		_ = a.dbConn.Close()
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

func (a *serverApp) Errors() <-chan error {
	return a.errCh
}

func (a *serverApp) Logger() service.Logger {
	return a.logSvc
}
