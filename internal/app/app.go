// Package app runs the capture-filter-display loop and dispatches key
// commands: screenshot, recording toggle, filter cycling, quit.
package app

import (
	"github.com/sirupsen/logrus"

	"live-camera-filters/internal/capture"
	"live-camera-filters/internal/filters"
	"live-camera-filters/internal/frame"
)

const (
	// ScreenshotFile receives snapshots taken with the space key.
	ScreenshotFile = "screenshot.png"
	// ScreencastFile receives recordings toggled with the tab key.
	ScreencastFile = "screencast.avi"
)

// Key codes delivered by the window's event poll (low 8 bits).
const (
	keySpace  = 32
	keyTab    = 9
	keyEscape = 27
	keyFilter = 'f'
	keyQuit   = 'q'
)

// Window is the display collaborator: it shows frames and feeds key
// events back through the registered callback.
type Window interface {
	Create() error
	IsOpen() bool
	Show(f *frame.Frame)
	ProcessEvents()
	OnKey(fn func(key int))
	Destroy() error
}

// App ties the window, the capture manager, and the filter roster into
// the main loop. Everything runs on the calling goroutine.
type App struct {
	window  Window
	manager *capture.Manager
	logger  *logrus.Logger

	roster  []filters.Filter
	current int
}

// New assembles the application around a window and capture manager.
// A nil roster selects the default filter cycle.
func New(window Window, manager *capture.Manager, roster []filters.Filter, logger *logrus.Logger) *App {
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	return &App{
		window:  window,
		manager: manager,
		logger:  logger,
		roster:  roster,
	}
}

// DefaultRoster is the shipped filter cycle, starting and wrapping at
// the pass-through entry.
func DefaultRoster() []filters.Filter {
	return []filters.Filter{
		filters.NewIdentity(),
		filters.NewStrokeEdges(),
		filters.NewPortra(),
		filters.NewProvia(),
		filters.NewVelvia(),
		filters.NewCrossProcess(),
		filters.NewSharpen(),
		filters.NewBlur(),
		filters.NewEmboss(),
	}
}

// CurrentFilter returns the active roster entry.
func (a *App) CurrentFilter() filters.Filter {
	return a.roster[a.current]
}

// Run drives the main loop until the window closes. Transient capture
// and write failures are logged and the loop keeps going.
func (a *App) Run() error {
	if err := a.window.Create(); err != nil {
		return err
	}
	a.window.OnKey(a.onKeypress)
	a.logger.Info("Controls: space=screenshot, tab=record, f=next filter, q=quit")

	for a.window.IsOpen() {
		a.manager.EnterFrame()
		f := a.manager.Frame()
		if f != nil {
			a.CurrentFilter().Apply(f, f)
		}
		if err := a.manager.ExitFrame(); err != nil {
			a.logger.WithError(err).Error("Frame write failed")
		}
		a.window.ProcessEvents()
	}
	return nil
}

// onKeypress handles one key command per event poll.
func (a *App) onKeypress(key int) {
	switch key {
	case keySpace:
		a.manager.WriteImage(ScreenshotFile)
		a.logger.WithField("path", ScreenshotFile).Info("Screenshot requested")
	case keyTab:
		if a.manager.IsWritingVideo() {
			if err := a.manager.StopWritingVideo(); err != nil {
				a.logger.WithError(err).Error("Stopping recording failed")
			}
		} else {
			a.manager.StartWritingVideo(ScreencastFile, "")
		}
	case keyFilter:
		a.current = (a.current + 1) % len(a.roster)
		a.logger.WithField("filter", a.CurrentFilter().Name()).Info("Filter switched")
	case keyQuit, keyEscape:
		if err := a.window.Destroy(); err != nil {
			a.logger.WithError(err).Error("Destroying window failed")
		}
	}
}
