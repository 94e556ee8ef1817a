package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/frudas24/dragbox/internal/app"
	"github.com/frudas24/dragbox/internal/config"
	"github.com/frudas24/dragbox/internal/control"
	"github.com/frudas24/dragbox/internal/viewer"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	control.SetDebugLogging(debug)
	if debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	password := ""
	if cfg.PasswordMode {
		password = cfg.UIPassword
	}
	v := viewer.New(password, cfg.Viewport)

	appInstance, err := app.New(cfg, v)
	if err != nil {
		return err
	}
	appInstance.Start()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints what was loaded and where to connect.
func logStartup(cfg config.Config) {
	log.Printf("DragBox starting")
	log.Printf("env file: %s (%s)", presence(cfg.EnvLoaded), cfg.EnvPath)
	log.Printf("geometry file: %s (%s)", presence(cfg.GeometryLoaded), cfg.GeometryPath)
	if cfg.PasswordMode {
		log.Printf("auth: password required")
	} else {
		log.Printf("auth: disabled (dev mode)")
	}
	log.Printf("limits: width %v..%v, min height %v, handle %v", cfg.MinWidth, cfg.MaxWidth, cfg.MinHeight, cfg.HandleSize)
	log.Printf("listen addr: %s", cfg.ListenAddr)
	if url := cfg.LocalURL(); url != "" {
		log.Printf("local url: %s", url)
	}
}

func presence(loaded bool) string {
	if loaded {
		return "loaded"
	}
	return "not found, using defaults"
}
