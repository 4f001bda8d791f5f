// Package secrets keeps small values, such as the database password, out of
// config.yaml. On Windows values are sealed with DPAPI for the local machine;
// elsewhere they are written as-is to an owner-only file.
package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"restaurant-api/internal/platform/paths"
)

// DBPasswordKey is the key the daemon reads when db.password is not configured.
const DBPasswordKey = "db_password"

var ErrNotFound = errors.New("secret not found")

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = unsafeKeyChars.ReplaceAllString(key, "_")
	if key == "" {
		return "empty"
	}
	return key
}

func secretFilePath(key string) (string, error) {
	dir, err := paths.SecretsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sanitizeKey(key)+".bin"), nil
}

func Set(key string, value []byte) error {
	p, err := secretFilePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}

	sealed, err := encrypt(value)
	if err != nil {
		return err
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func Get(key string) ([]byte, error) {
	p, err := secretFilePath(key)
	if err != nil {
		return nil, err
	}
	sealed, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decrypt(sealed)
}

func Delete(key string) error {
	p, err := secretFilePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
