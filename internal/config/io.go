package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"restaurant-api/internal/platform/paths"
)

var ErrNotFound = errors.New("config not found")

// Path resolves an explicit path or falls back to the machine-wide location.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return paths.ConfigFilePath()
}

func Load(p string) (Config, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadOrDefault(p string) (Config, error) {
	cfg, err := Load(p)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}

	return Config{}, err
}

func Save(p string, cfg Config) error {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	_ = tmp.Chmod(0o600)

	_, writeErr := tmp.Write(out)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()

	if writeErr != nil || syncErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr != nil {
			return writeErr
		}
		if syncErr != nil {
			return syncErr
		}
		return closeErr
	}

	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
