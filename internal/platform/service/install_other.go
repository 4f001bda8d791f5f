//go:build !windows

package service

import "time"

func Install(_, _, _ string, _ ...string) (bool, error) {
	return false, ErrUnsupported
}

func Uninstall(_ string, _ time.Duration) error {
	return ErrUnsupported
}

func Start(_ string, _ time.Duration) error {
	return ErrUnsupported
}
