package capture

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-camera-filters/internal/frame"
)

// fakeSource hands out copies of a fixed frame and lets tests control
// the reported device properties.
type fakeSource struct {
	fps       float64
	width     int
	height    int
	grabOK    bool
	retrieveOK bool
	grabs     int
	retrieves int
}

func newFakeSource() *fakeSource {
	return &fakeSource{fps: 0, width: 64, height: 48, grabOK: true, retrieveOK: true}
}

func (s *fakeSource) Grab() bool {
	s.grabs++
	return s.grabOK
}

func (s *fakeSource) Retrieve() (*frame.Frame, bool) {
	s.retrieves++
	if !s.retrieveOK {
		return nil, false
	}
	f := frame.New(s.width, s.height)
	f.Fill(1, 2, 3)
	return f, true
}

func (s *fakeSource) FPS() float64 { return s.fps }

func (s *fakeSource) FrameSize() (int, int) { return s.width, s.height }

type fakePreview struct {
	shown []*frame.Frame
}

func (p *fakePreview) Show(f *frame.Frame) { p.shown = append(p.shown, f) }

type fakeImageWriter struct {
	paths []string
	err   error
}

func (w *fakeImageWriter) Write(path string, f *frame.Frame) error {
	if w.err != nil {
		return w.err
	}
	w.paths = append(w.paths, path)
	return nil
}

type fakeVideoWriter struct {
	frames int
	closed int
	err    error
}

func (w *fakeVideoWriter) Write(f *frame.Frame) error {
	if w.err != nil {
		return w.err
	}
	w.frames++
	return nil
}

func (w *fakeVideoWriter) Close() error {
	w.closed++
	return nil
}

type fakeOpener struct {
	writer  *fakeVideoWriter
	opens   int
	path    string
	codec   string
	fps     float64
	width   int
	height  int
	openErr error
}

func (o *fakeOpener) Open(path, codec string, fps float64, width, height int) (VideoWriter, error) {
	o.opens++
	o.path, o.codec, o.fps, o.width, o.height = path, codec, fps, width, height
	if o.openErr != nil {
		return nil, o.openErr
	}
	if o.writer == nil {
		o.writer = &fakeVideoWriter{}
	}
	return o.writer, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestManager builds a manager on fakes with a clock that advances a
// fixed step per observation.
func newTestManager(src *fakeSource, step time.Duration) (*Manager, *fakeImageWriter, *fakeOpener) {
	images := &fakeImageWriter{}
	opener := &fakeOpener{}
	m := NewManager(src, images, opener, nil, false, quietLogger())
	now := time.Unix(1000, 0)
	m.now = func() time.Time {
		now = now.Add(step)
		return now
	}
	return m, images, opener
}

func runCycle(t *testing.T, m *Manager) {
	t.Helper()
	m.EnterFrame()
	require.NotNil(t, m.Frame())
	require.NoError(t, m.ExitFrame())
}

func TestEnterFrame_ReentryPanics(t *testing.T) {
	m, _, _ := newTestManager(newFakeSource(), time.Second)
	m.EnterFrame()
	assert.Panics(t, func() { m.EnterFrame() })
}

func TestFrame_DecodesOncePerCycle(t *testing.T) {
	src := newFakeSource()
	m, _, _ := newTestManager(src, time.Second)

	m.EnterFrame()
	f1 := m.Frame()
	f2 := m.Frame()
	require.NotNil(t, f1)
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, src.retrieves)
	require.NoError(t, m.ExitFrame())

	assert.Nil(t, m.Frame(), "frame released after the cycle")
}

func TestFrame_RetrieveFailureCachedForCycle(t *testing.T) {
	src := newFakeSource()
	src.retrieveOK = false
	m, _, _ := newTestManager(src, time.Second)

	m.EnterFrame()
	assert.Nil(t, m.Frame())
	assert.Nil(t, m.Frame())
	assert.Equal(t, 1, src.retrieves, "failure is cached, not retried in-cycle")
	require.NoError(t, m.ExitFrame())

	// The next cycle may succeed again.
	src.retrieveOK = true
	m.EnterFrame()
	assert.NotNil(t, m.Frame())
	require.NoError(t, m.ExitFrame())
}

func TestFPSEstimate(t *testing.T) {
	// With the clock stepping 100ms per observation, N frames span
	// (N-1) observed intervals... the estimate must equal
	// framesElapsed / secondsSinceStart at each exit.
	m, _, _ := newTestManager(newFakeSource(), 100*time.Millisecond)

	runCycle(t, m)
	assert.Zero(t, m.FPSEstimate(), "first frame only starts the timer")

	for i := 0; i < 4; i++ {
		runCycle(t, m)
	}
	// 5 frames: 4 intervals over 0.4s.
	assert.InDelta(t, 10.0, m.FPSEstimate(), 1e-9)
}

func TestExitFrame_NoFrameIsNoOp(t *testing.T) {
	src := newFakeSource()
	src.grabOK = false
	m, _, _ := newTestManager(src, time.Second)

	m.EnterFrame()
	assert.Nil(t, m.Frame())
	require.NoError(t, m.ExitFrame())
	assert.Zero(t, m.FPSEstimate())

	// The lifecycle must be reusable after an empty cycle.
	src.grabOK = true
	m.EnterFrame()
	require.NotNil(t, m.Frame())
	require.NoError(t, m.ExitFrame())
}

func TestWriteImage_PendingUntilExit(t *testing.T) {
	m, images, _ := newTestManager(newFakeSource(), time.Second)

	m.WriteImage("screenshot.png")
	assert.True(t, m.IsWritingImage())
	assert.Empty(t, images.paths, "nothing written before ExitFrame")

	runCycle(t, m)
	assert.Equal(t, []string{"screenshot.png"}, images.paths)
	assert.False(t, m.IsWritingImage(), "pending path cleared after write")

	runCycle(t, m)
	assert.Len(t, images.paths, 1, "one request writes one file")
}

func TestWriteImage_ErrorPropagatesAndCyclesOn(t *testing.T) {
	m, images, _ := newTestManager(newFakeSource(), time.Second)
	images.err = errors.New("disk full")

	m.WriteImage("screenshot.png")
	m.EnterFrame()
	require.NotNil(t, m.Frame())
	err := m.ExitFrame()
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, m.IsWritingImage())

	// The manager keeps cycling after the failure.
	runCycle(t, m)
}

func TestPreviewMirroring(t *testing.T) {
	src := newFakeSource()
	preview := &fakePreview{}
	m := NewManager(src, &fakeImageWriter{}, &fakeOpener{}, preview, true, quietLogger())
	m.now = time.Now

	m.EnterFrame()
	f := m.Frame()
	require.NotNil(t, f)
	f.SetAt(0, 0, 200, 0, 0)
	require.NoError(t, m.ExitFrame())

	require.Len(t, preview.shown, 1)
	shown := preview.shown[0]
	assert.NotSame(t, f, shown, "mirrored preview is a copy")
	b, _, _ := shown.At(src.width-1, 0)
	assert.Equal(t, byte(200), b, "frame flipped horizontally")
}

func TestVideoWriter_UsesDeviceFPSWhenReported(t *testing.T) {
	src := newFakeSource()
	src.fps = 24
	m, _, opener := newTestManager(src, time.Second)

	m.StartWritingVideo("screencast.avi", "")
	assert.True(t, m.IsWritingVideo())
	runCycle(t, m)

	assert.Equal(t, 1, opener.opens, "writer opened on the first recorded frame")
	assert.Equal(t, "screencast.avi", opener.path)
	assert.Equal(t, DefaultCodec, opener.codec)
	assert.Equal(t, 24.0, opener.fps)
	assert.Equal(t, src.width, opener.width)
	assert.Equal(t, src.height, opener.height)
	assert.Equal(t, 1, opener.writer.frames)
}

func TestVideoWriter_DeferredUntilEstimateSettles(t *testing.T) {
	for _, fps := range []float64{0, math.NaN()} {
		src := newFakeSource()
		src.fps = fps
		m, _, opener := newTestManager(src, 50*time.Millisecond)

		m.StartWritingVideo("screencast.avi", "")
		for i := 0; i < 19; i++ {
			runCycle(t, m)
			assert.Zero(t, opener.opens, "no writer before 20 observed frames")
		}

		// Frame 20: enough data, the running estimate is used.
		runCycle(t, m)
		require.Equal(t, 1, opener.opens)
		assert.InDelta(t, 20.0, opener.fps, 1e-9, "uses the estimate, not the 30 fallback")
		assert.Equal(t, 1, opener.writer.frames, "deferred frames are skipped, not queued")

		for i := 0; i < 5; i++ {
			runCycle(t, m)
		}
		assert.Equal(t, 1, opener.opens, "writer constructed exactly once")
		assert.Equal(t, 6, opener.writer.frames)

		require.NoError(t, m.StopWritingVideo())
		assert.False(t, m.IsWritingVideo())
		assert.Equal(t, 1, opener.writer.closed)
	}
}

func TestStopWritingVideo_BeforeWriterExists(t *testing.T) {
	m, _, opener := newTestManager(newFakeSource(), time.Second)
	m.StartWritingVideo("screencast.avi", "MJPG")
	require.NoError(t, m.StopWritingVideo())
	assert.Zero(t, opener.opens)

	// Stopping twice is harmless.
	require.NoError(t, m.StopWritingVideo())
}

func TestVideoWriter_OpenFailureStopsRecording(t *testing.T) {
	src := newFakeSource()
	src.fps = 30
	m, _, opener := newTestManager(src, time.Second)
	opener.openErr = errors.New("codec missing")

	m.StartWritingVideo("screencast.avi", "")
	m.EnterFrame()
	require.NotNil(t, m.Frame())
	err := m.ExitFrame()
	require.Error(t, err)
	assert.False(t, m.IsWritingVideo(), "failed open clears recording state")

	runCycle(t, m)
	assert.Equal(t, 1, opener.opens, "no retry after a failed open")
}
