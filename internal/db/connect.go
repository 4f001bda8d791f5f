package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"restaurant-api/internal/config"
)

const driverName = "sqlserver"

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// OptionsFor applies the pool settings found in cfg over the defaults.
func OptionsFor(cfg config.Config) Options {
	opt := DefaultOptions()
	if cfg.DB.MaxOpenConns > 0 {
		opt.MaxOpenConns = cfg.DB.MaxOpenConns
		opt.MaxIdleConns = cfg.DB.MaxOpenConns
	}
	if cfg.DB.PingTimeoutSec > 0 {
		opt.PingTimeout = time.Duration(cfg.DB.PingTimeoutSec) * time.Second
	}
	return opt
}

func Open(cfg config.Config, opt Options) (*sql.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if opt.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opt.MaxOpenConns)
	}
	if opt.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opt.MaxIdleConns)
	}
	if opt.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opt.ConnMaxLifetime)
	}

	if opt.PingTimeout <= 0 {
		opt.PingTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), opt.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// BuildDSN returns the explicit connection string when one is configured,
// otherwise a sqlserver:// URL assembled from the discrete db settings.
func BuildDSN(cfg config.Config) (string, error) {
	if cs := strings.TrimSpace(cfg.DB.ConnectionString); cs != "" {
		return cs, nil
	}

	host := strings.TrimSpace(cfg.DB.Host)
	port := cfg.DB.Port
	user := strings.TrimSpace(cfg.DB.User)

	if host == "" {
		return "", errors.New("db.host is required")
	}
	if port <= 0 || port > 65535 {
		return "", errors.New("db.port is invalid")
	}
	if user == "" {
		return "", errors.New("db.user is required")
	}

	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(user, cfg.DB.Password),
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	q := url.Values{}
	if dbName := strings.TrimSpace(cfg.DB.Database); dbName != "" {
		q.Set("database", dbName)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func Ping(ctx context.Context, dbConn *sql.DB) error {
	if dbConn == nil {
		return errors.New("db connection is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return dbConn.PingContext(ctx)
}
