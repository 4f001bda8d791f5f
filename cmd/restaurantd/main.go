package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant-api/internal/logger"
	"restaurant-api/internal/platform/service"
	"restaurant-api/internal/secrets"
)

const (
	serviceName        = "restaurantd"
	serviceDescription = "Restaurant REST API over SQL Server"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	var opts options
	var install, uninstall, setPassword bool
	flag.StringVar(&opts.configPath, "config", "", "path to config.yaml (default: per-machine location)")
	flag.StringVar(&opts.envPath, "env", ".env", "path to an optional .env file")
	flag.BoolVar(&install, "install-service", false, "register restaurantd as a Windows service and start it")
	flag.BoolVar(&uninstall, "uninstall-service", false, "stop and remove the Windows service")
	flag.BoolVar(&setPassword, "set-db-password", false, "read the database password from stdin and store it in the secret store")
	flag.Parse()

	bootstrapLog := logger.NewStderr()

	switch {
	case setPassword:
		if err := storePassword(os.Stdin); err != nil {
			bootstrapLog.Error("failed to store db password", err)
			os.Exit(1)
		}
		bootstrapLog.Success("db password stored")
		return
	case install:
		if err := installService(opts); err != nil {
			bootstrapLog.Error("service install failed", err)
			os.Exit(1)
		}
		return
	case uninstall:
		if err := service.Uninstall(serviceName, shutdownTimeout); err != nil {
			bootstrapLog.Error("service uninstall failed", err)
			os.Exit(1)
		}
		bootstrapLog.Success("service removed")
		return
	}

	app := &serverApp{opts: opts}
	if isSvc, _ := service.IsWindowsService(); isSvc {
		if err := service.Run(serviceName, app); err != nil {
			bootstrapLog.Error("windows service failed", err)
			os.Exit(1)
		}
		return
	}

	if err := app.Start(); err != nil {
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-app.Errors():
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logSvc.Error("server stopped", err)
			app.Stop(context.Background())
			os.Exit(1)
		}
	case sig := <-sigCh:
		app.logSvc.Info(fmt.Sprintf("shutdown signal: %s", sig))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.Stop(ctx)
	}
}

func storePassword(r io.Reader) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return errors.New("password is empty")
	}
	return secrets.Set(secrets.DBPasswordKey, []byte(pw))
}

func installService(opts options) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	var args []string
	if opts.configPath != "" {
		args = append(args, "-config", opts.configPath)
	}
	if opts.envPath != "" {
		args = append(args, "-env", opts.envPath)
	}

	created, err := service.Install(serviceName, exe, serviceDescription, args...)
	if err != nil {
		return err
	}
	log := logger.NewStderr()
	if created {
		log.Success(fmt.Sprintf("service %s created", serviceName))
	} else {
		log.Info(fmt.Sprintf("service %s updated", serviceName))
	}
	return service.Start(serviceName, 30*time.Second)
}
