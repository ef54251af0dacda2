// Package capture owns the per-frame lifecycle: pulling frames from a
// source, estimating the frame rate, and routing frames to the preview,
// screenshot, and video sinks.
package capture

import "live-camera-filters/internal/frame"

// Source delivers raw frames. Grab advances to the next frame without
// decoding; Retrieve decodes the grabbed frame. FPS and FrameSize report
// device properties and may return zero or NaN when the device cannot say.
type Source interface {
	Grab() bool
	Retrieve() (*frame.Frame, bool)
	FPS() float64
	FrameSize() (width, height int)
}

// Preview receives each processed frame for display.
type Preview interface {
	Show(f *frame.Frame)
}

// ImageWriter persists a single frame to a file.
type ImageWriter interface {
	Write(path string, f *frame.Frame) error
}

// VideoWriter accepts sequential frames of a recording. Close flushes
// and releases the underlying encoder.
type VideoWriter interface {
	Write(f *frame.Frame) error
	Close() error
}

// VideoWriterOpener constructs a VideoWriter for one recording session.
type VideoWriterOpener interface {
	Open(path, codec string, fps float64, width, height int) (VideoWriter, error)
}
