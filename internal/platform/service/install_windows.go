//go:build windows

package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

const pollInterval = 300 * time.Millisecond

// Install registers name as an automatic-start service running exePath with
// args. An existing registration is repointed at exePath. It reports whether
// the service was newly created.
func Install(name, exePath, description string, args ...string) (bool, error) {
	if name == "" {
		return false, errors.New("service name is required")
	}
	if exePath == "" {
		return false, errors.New("service executable path is required")
	}

	absPath, err := filepath.Abs(exePath)
	if err != nil {
		return false, err
	}

	m, err := mgr.Connect()
	if err != nil {
		return false, err
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if !errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return false, err
		}
		s, err = m.CreateService(name, absPath, mgr.Config{
			StartType:   mgr.StartAutomatic,
			DisplayName: name,
			Description: description,
		}, args...)
		if err != nil {
			return false, err
		}
		defer s.Close()
		return true, nil
	}
	defer s.Close()

	cmdLine := syscall.EscapeArg(absPath)
	for _, a := range args {
		cmdLine += " " + syscall.EscapeArg(a)
	}
	binaryPath, err := syscall.UTF16PtrFromString(cmdLine)
	if err != nil {
		return false, err
	}
	if err := windows.ChangeServiceConfig(
		s.Handle,
		windows.SERVICE_NO_CHANGE,
		mgr.StartAutomatic,
		windows.SERVICE_NO_CHANGE,
		binaryPath,
		nil, nil, nil, nil, nil, nil,
	); err != nil {
		return false, err
	}
	return false, nil
}

// Uninstall stops name if it is running and removes its registration.
func Uninstall(name string, timeout time.Duration) error {
	if name == "" {
		return errors.New("service name is required")
	}

	m, err := mgr.Connect()
	if err != nil {
		return err
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return nil
		}
		return err
	}
	defer s.Close()

	if _, err := s.Control(svc.Stop); err == nil {
		if err := waitForState(s, svc.Stopped, timeout); err != nil {
			return err
		}
	} else if !errors.Is(err, windows.ERROR_SERVICE_NOT_ACTIVE) {
		return err
	}
	return s.Delete()
}

// Start starts name and waits until it reports running.
func Start(name string, timeout time.Duration) error {
	if name == "" {
		return errors.New("service name is required")
	}

	m, err := mgr.Connect()
	if err != nil {
		return err
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Start(); err != nil && !errors.Is(err, windows.ERROR_SERVICE_ALREADY_RUNNING) {
		return err
	}
	return waitForState(s, svc.Running, timeout)
}

func waitForState(s *mgr.Service, want svc.State, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for {
		status, err := s.Query()
		if err != nil {
			return err
		}
		if status.State == want {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for service state %d (current %d)", want, status.State)
		}
		time.Sleep(pollInterval)
	}
}
