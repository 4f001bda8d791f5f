package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// ConnStringEnv holds a full SQL Server connection string and wins over the
// individual db.* settings.
const ConnStringEnv = "MsSqlConn"

const envPrefix = "RESTAURANT_"

// envKeys maps environment variable suffixes onto yaml paths.
var envKeys = map[string][]string{
	"API_LISTEN":       {"apiListen"},
	"DEBUG":            {"debug"},
	"LOG_FILE":         {"logFile"},
	"BEARER_TOKEN":     {"bearerToken"},
	"SCHEMA":           {"schema"},
	"BOOTSTRAP_SCHEMA": {"bootstrapSchema"},
	"DB_HOST":          {"db", "host"},
	"DB_PORT":          {"db", "port"},
	"DB_USER":          {"db", "user"},
	"DB_PASSWORD":      {"db", "password"},
	"DB_DATABASE":      {"db", "database"},
	"DB_MAX_OPEN":      {"db", "maxOpenConns"},
}

// LoadDotEnv loads a .env file into the process environment. A missing file is not an error.
func LoadDotEnv(p string) error {
	if p == "" {
		p = ".env"
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(p)
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	overrides := map[string]any{}
	for suffix, path := range envKeys {
		v, ok := lookup(envPrefix + suffix)
		if !ok {
			continue
		}
		setPath(overrides, path, strings.TrimSpace(v))
	}
	if v, ok := lookup(ConnStringEnv); ok && strings.TrimSpace(v) != "" {
		setPath(overrides, []string{"db", "connectionString"}, strings.TrimSpace(v))
	}
	if len(overrides) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create env decoder: %w", err)
	}
	if err := dec.Decode(overrides); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

func setPath(m map[string]any, path []string, value string) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
