//go:build windows

package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sys/windows/svc"
)

const stopTimeout = 10 * time.Second

func IsWindowsService() (bool, error) {
	return svc.IsWindowsService()
}

func Run(name string, app App) error {
	return svc.Run(name, &handler{app: app})
}

type handler struct {
	app App
}

func (h *handler) Execute(_ []string, r <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	const accepts = svc.AcceptStop | svc.AcceptShutdown
	status <- svc.Status{State: svc.StartPending}

	if err := h.app.Start(); err != nil {
		h.logError("service start failed", err)
		status <- svc.Status{State: svc.Stopped}
		return false, 1
	}

	status <- svc.Status{State: svc.Running, Accepts: accepts}
	h.logInfo("service running")

	for {
		select {
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				status <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				h.stop()
				status <- svc.Status{State: svc.Stopped}
				return false, 0
			}
		case err := <-h.app.Errors():
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				h.logError("server stopped", err)
			}
			status <- svc.Status{State: svc.StopPending}
			h.stop()
			status <- svc.Status{State: svc.Stopped}
			return false, 1
		}
	}
}

func (h *handler) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	h.app.Stop(ctx)
}

func (h *handler) logInfo(msg string) {
	if l := h.app.Logger(); l != nil {
		l.Info(msg)
	}
}

func (h *handler) logError(msg string, err error) {
	if l := h.app.Logger(); l != nil {
		l.Error(msg, err)
	}
}
