//go:build !windows

package service

func IsWindowsService() (bool, error) {
	return false, nil
}

func Run(_ string, _ App) error {
	return ErrUnsupported
}
