package capture

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"live-camera-filters/internal/frame"
)

const (
	// DefaultCodec is the fourcc tag used when StartWritingVideo gets none.
	DefaultCodec = "XVID"

	// fallbackFPS is used for the video writer when neither the device
	// nor the running estimate can supply a rate.
	fallbackFPS = 30.0

	// minFramesForEstimate is how many frames must be observed before
	// the running FPS estimate is trusted for writer construction.
	minFramesForEstimate = 20
)

// Manager drives one frame cycle at a time: EnterFrame grabs the next
// frame, Frame lazily decodes it, and ExitFrame forwards it to the
// preview, a pending screenshot, and the video recording, in that order.
// At most one frame buffer is held between EnterFrame and ExitFrame.
type Manager struct {
	source Source
	images ImageWriter
	videos VideoWriterOpener
	logger *logrus.Logger

	preview       Preview
	mirrorPreview bool

	entered bool
	fetched bool
	cur     *frame.Frame

	imagePath string

	videoPath  string
	videoCodec string
	writer     VideoWriter

	startTime     time.Time
	framesElapsed int
	fpsEstimate   float64

	now func() time.Time
}

// NewManager wires the manager to its collaborators. preview may be nil
// when no display is attached; mirrorPreview flips preview frames
// horizontally so the display behaves like a mirror.
func NewManager(source Source, images ImageWriter, videos VideoWriterOpener,
	preview Preview, mirrorPreview bool, logger *logrus.Logger) *Manager {
	return &Manager{
		source:        source,
		images:        images,
		videos:        videos,
		preview:       preview,
		mirrorPreview: mirrorPreview,
		logger:        logger,
		now:           time.Now,
	}
}

// EnterFrame begins a frame cycle by grabbing the next frame from the
// source. Calling it again before ExitFrame is a caller bug and panics.
func (m *Manager) EnterFrame() {
	if m.entered {
		panic("capture: EnterFrame called while a frame cycle is active")
	}
	m.entered = m.source.Grab()
}

// Frame returns the current cycle's frame, decoding it from the source
// on first access and caching the result for the rest of the cycle.
// It returns nil when no frame is available.
func (m *Manager) Frame() *frame.Frame {
	if !m.entered || m.fetched {
		return m.cur
	}
	m.fetched = true
	f, ok := m.source.Retrieve()
	if !ok {
		m.logger.Debug("frame retrieve failed, skipping cycle")
		return nil
	}
	m.cur = f
	return m.cur
}

// ExitFrame ends the cycle: it updates the FPS estimate, shows the frame
// on the preview, writes a pending screenshot, appends to the recording,
// and releases the frame. Write errors are returned after the cycle
// state is cleaned up, so the loop can keep running.
func (m *Manager) ExitFrame() error {
	// Grab may have succeeded while retrieve failed; either way a cycle
	// with no frame just resets.
	if m.Frame() == nil {
		m.entered = false
		m.fetched = false
		return nil
	}

	m.updateFPSEstimate()

	if m.preview != nil {
		shown := m.cur
		if m.mirrorPreview {
			shown = m.cur.Mirrored()
		}
		m.preview.Show(shown)
	}

	var firstErr error
	if m.imagePath != "" {
		if err := m.images.Write(m.imagePath, m.cur); err != nil {
			firstErr = fmt.Errorf("write screenshot %s: %w", m.imagePath, err)
		} else {
			m.logger.WithField("path", m.imagePath).Info("Screenshot saved")
		}
		m.imagePath = ""
	}

	if err := m.writeVideoFrame(); err != nil && firstErr == nil {
		firstErr = err
	}

	m.cur = nil
	m.entered = false
	m.fetched = false
	return firstErr
}

// updateFPSEstimate maintains the running frames-per-second average.
// The first processed frame only starts the clock; after N frames the
// estimate is (N-1) divided by the elapsed time since that first frame.
func (m *Manager) updateFPSEstimate() {
	if m.framesElapsed == 0 {
		m.startTime = m.now()
	} else {
		elapsed := m.now().Sub(m.startTime).Seconds()
		if elapsed > 0 {
			m.fpsEstimate = float64(m.framesElapsed) / elapsed
		}
	}
	m.framesElapsed++
}

// FPSEstimate reports the running frame rate estimate, zero until at
// least two frames have been processed.
func (m *Manager) FPSEstimate() float64 {
	return m.fpsEstimate
}

// WriteImage schedules a screenshot of the next exiting frame.
func (m *Manager) WriteImage(path string) {
	m.imagePath = path
}

// IsWritingImage reports whether a screenshot is pending.
func (m *Manager) IsWritingImage() bool {
	return m.imagePath != ""
}

// StartWritingVideo begins recording to path. The writer itself is
// created lazily on a later ExitFrame, once the frame rate is known.
// An empty codec selects DefaultCodec.
func (m *Manager) StartWritingVideo(path, codec string) {
	if codec == "" {
		codec = DefaultCodec
	}
	m.videoPath = path
	m.videoCodec = codec
	m.logger.WithFields(logrus.Fields{
		"path":  path,
		"codec": codec,
	}).Info("Recording started")
}

// IsWritingVideo reports whether a recording is in progress.
func (m *Manager) IsWritingVideo() bool {
	return m.videoPath != ""
}

// StopWritingVideo ends the recording and releases the writer if one
// was ever constructed.
func (m *Manager) StopWritingVideo() error {
	m.videoPath = ""
	m.videoCodec = ""
	if m.writer == nil {
		return nil
	}
	w := m.writer
	m.writer = nil
	m.logger.Info("Recording stopped")
	if err := w.Close(); err != nil {
		return fmt.Errorf("close video writer: %w", err)
	}
	return nil
}

// writeVideoFrame appends the current frame to the recording,
// constructing the writer on first use. When the device reports no
// usable rate and fewer than minFramesForEstimate frames have been
// seen, construction is deferred and the frame is skipped.
func (m *Manager) writeVideoFrame() error {
	if m.videoPath == "" {
		return nil
	}

	if m.writer == nil {
		fps := m.source.FPS()
		if fps <= 0 || math.IsNaN(fps) {
			if m.framesElapsed < minFramesForEstimate {
				m.logger.WithField("frames", m.framesElapsed).
					Debug("Deferring video writer until the frame rate settles")
				return nil
			}
			fps = m.fpsEstimate
			if fps <= 0 {
				fps = fallbackFPS
			}
		}
		w, h := m.source.FrameSize()
		writer, err := m.videos.Open(m.videoPath, m.videoCodec, fps, w, h)
		if err != nil {
			path := m.videoPath
			m.videoPath = ""
			m.videoCodec = ""
			return fmt.Errorf("open video writer %s: %w", path, err)
		}
		m.writer = writer
		m.logger.WithFields(logrus.Fields{
			"path":   m.videoPath,
			"fps":    fps,
			"width":  w,
			"height": h,
		}).Info("Video writer opened")
	}

	if err := m.writer.Write(m.cur); err != nil {
		return fmt.Errorf("write video frame: %w", err)
	}
	return nil
}
