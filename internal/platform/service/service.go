// Package service runs restaurantd under the Windows service control manager.
// On other platforms every entry point reports ErrUnsupported.
package service

import (
	"context"
	"errors"
)

var ErrUnsupported = errors.New("windows services are not supported on this OS")

// App is the lifecycle the service handler drives.
type App interface {
	Start() error
	Stop(ctx context.Context)
	Errors() <-chan error
	Logger() Logger
}

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
}
