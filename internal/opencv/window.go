package opencv

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"live-camera-filters/internal/frame"
)

// Window adapts a gocv highgui window to the app.Window interface.
// ProcessEvents polls one key per call with a 1ms wait, masks the code
// to its low 8 bits, and hands it to the registered callback.
type Window struct {
	title  string
	logger *logrus.Logger
	win    *gocv.Window
	onKey  func(key int)
}

func NewWindow(title string, logger *logrus.Logger) *Window {
	return &Window{title: title, logger: logger}
}

func (w *Window) Create() error {
	if w.win != nil {
		return nil
	}
	w.win = gocv.NewWindow(w.title)
	w.logger.WithField("title", w.title).Debug("Window created")
	return nil
}

func (w *Window) IsOpen() bool {
	return w.win != nil && w.win.IsOpen()
}

func (w *Window) Show(f *frame.Frame) {
	if w.win == nil {
		return
	}
	mat, err := matFromFrame(f)
	if err != nil {
		w.logger.WithError(err).Warn("Dropping undisplayable frame")
		return
	}
	defer mat.Close()
	w.win.IMShow(mat)
}

func (w *Window) OnKey(fn func(key int)) {
	w.onKey = fn
}

func (w *Window) ProcessEvents() {
	if w.win == nil {
		return
	}
	code := w.win.WaitKey(1)
	if code < 0 || w.onKey == nil {
		return
	}
	// GTK sets high bits on some platforms; only the low byte matters.
	w.onKey(code & 0xFF)
}

func (w *Window) Destroy() error {
	if w.win == nil {
		return nil
	}
	win := w.win
	w.win = nil
	if err := win.Close(); err != nil {
		return fmt.Errorf("close window: %w", err)
	}
	return nil
}
