package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "restaurant-api"

// HomeEnv overrides the machine-wide base directory.
const HomeEnv = "RESTAURANT_API_HOME"

func baseDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName), nil
	case "linux":
		return filepath.Join("/etc", AppName), nil
	case "darwin":
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	default:
		return "", errors.New("unsupported OS for machine-wide config")
	}
}

func ConfigFilePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func LoggerFilePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "server.log"), nil
}

func SecretsDir() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "secrets"), nil
}
