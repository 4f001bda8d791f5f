package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const DefaultSchema = "dbo"

type DBConfig struct {
	ConnectionString string `yaml:"connectionString"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	Database         string `yaml:"database"`
	MaxOpenConns     int    `yaml:"maxOpenConns"`
	PingTimeoutSec   int    `yaml:"pingTimeoutSec"`
}

type Config struct {
	APIListen       string   `yaml:"apiListen"`
	Debug           bool     `yaml:"debug"`
	LogFile         string   `yaml:"logFile"`
	BearerToken     string   `yaml:"bearerToken"`
	Schema          string   `yaml:"schema"`
	BootstrapSchema bool     `yaml:"bootstrapSchema"`
	DB              DBConfig `yaml:"db"`
}

func Default() Config {
	return Config{
		APIListen: "127.0.0.1:8080",
		Schema:    DefaultSchema,
		DB: DBConfig{
			Host:           "localhost",
			Port:           1433,
			MaxOpenConns:   10,
			PingTimeoutSec: 5,
		},
	}
}

// Validate reports every problem at once so a broken config file can be fixed in one pass.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := ValidateListenAddr(strings.TrimSpace(c.APIListen)); err != nil {
		result = multierror.Append(result, err)
	}
	if strings.TrimSpace(c.Schema) == "" {
		result = multierror.Append(result, errors.New("schema is required"))
	}

	if strings.TrimSpace(c.DB.ConnectionString) == "" {
		if strings.TrimSpace(c.DB.Host) == "" {
			result = multierror.Append(result, errors.New("db.host is required"))
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			result = multierror.Append(result, fmt.Errorf("db.port %d is invalid", c.DB.Port))
		}
		if strings.TrimSpace(c.DB.User) == "" {
			result = multierror.Append(result, errors.New("db.user is required"))
		}
	}

	return result.ErrorOrNil()
}

// ValidateListenAddr accepts host:port with a non-empty host and a port in 1..65535.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("apiListen is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("apiListen must be in host:port format")
	}
	if host == "" {
		return errors.New("apiListen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("apiListen port is invalid")
	}

	return nil
}
