//go:build !windows

package service

import (
	"errors"
	"testing"
	"time"
)

func TestUnsupportedOffWindows(t *testing.T) {
	isSvc, err := IsWindowsService()
	if err != nil || isSvc {
		t.Fatalf("IsWindowsService() = %v, %v; want false, nil", isSvc, err)
	}
	if err := Run("restaurantd", nil); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Run: got %v, want ErrUnsupported", err)
	}
	if _, err := Install("restaurantd", "/usr/bin/restaurantd", ""); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Install: got %v, want ErrUnsupported", err)
	}
	if err := Uninstall("restaurantd", time.Second); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Uninstall: got %v, want ErrUnsupported", err)
	}
	if err := Start("restaurantd", time.Second); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Start: got %v, want ErrUnsupported", err)
	}
}
