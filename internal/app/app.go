// Package app wires HTTP, the control websocket and the state feed together.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/config"
	"github.com/frudas24/dragbox/internal/control"
	"github.com/frudas24/dragbox/internal/feed"
	"github.com/frudas24/dragbox/internal/monitor"
	"github.com/frudas24/dragbox/internal/viewer"
)

// App coordinates the HTTP API, the control websocket and the state feed.
type App struct {
	cfg     config.Config
	viewer  *viewer.Viewer
	control *control.Server
	feed    *feed.Stream
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, v *viewer.Viewer) (*App, error) {
	if v == nil {
		return nil, errors.New("viewer is required")
	}

	app := &App{
		cfg:    cfg,
		viewer: v,
		feed:   feed.NewStream(time.Duration(cfg.FeedIntervalMs) * time.Millisecond),
	}

	ctl, err := control.NewServer(v, control.Options{
		Initial: cfg.Initial,
		Limits: box.Limits{
			MinWidth:  cfg.MinWidth,
			MaxWidth:  cfg.MaxWidth,
			MinHeight: cfg.MinHeight,
		},
		HandleSize: cfg.HandleSize,
		OnState:    app.publishState,
	})
	if err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}
	app.control = ctl
	app.publishState(ctl.State())
	return app, nil
}

// Start seeds the fallback viewport from the configured display when one is detectable.
func (a *App) Start() {
	size, err := monitor.Viewport(a.cfg.MonitorIndex)
	if err != nil {
		log.Printf("monitor: %v; default viewport %vx%v", err, a.cfg.Viewport.W, a.cfg.Viewport.H)
		return
	}
	a.viewer.SetFallbackViewport(size)
	log.Printf("monitor: default viewport %vx%v", size.W, size.H)
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// publishState forwards controller states to feed subscribers.
func (a *App) publishState(s box.State) {
	if err := a.feed.PublishJSON(s); err != nil {
		log.Printf("feed: %v", err)
	}
}
