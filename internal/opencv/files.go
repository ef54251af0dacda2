package opencv

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"live-camera-filters/internal/capture"
	"live-camera-filters/internal/frame"
)

// ImageFiles writes single frames to image files through gocv's
// extension-driven encoder.
type ImageFiles struct {
	logger *logrus.Logger
}

func NewImageFiles(logger *logrus.Logger) *ImageFiles {
	return &ImageFiles{logger: logger}
}

func (w *ImageFiles) Write(path string, f *frame.Frame) error {
	mat, err := matFromFrame(f)
	if err != nil {
		return err
	}
	defer mat.Close()
	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("encode image %s", path)
	}
	w.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  f.Width,
		"height": f.Height,
	}).Debug("Image written")
	return nil
}

// VideoFiles opens gocv-backed video writers, one per recording.
type VideoFiles struct {
	logger *logrus.Logger
}

func NewVideoFiles(logger *logrus.Logger) *VideoFiles {
	return &VideoFiles{logger: logger}
}

func (v *VideoFiles) Open(path, codec string, fps float64, width, height int) (capture.VideoWriter, error) {
	writer, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video file %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("video encoder rejected %s (codec %s)", path, codec)
	}
	return &videoFile{writer: writer}, nil
}

type videoFile struct {
	writer *gocv.VideoWriter
}

func (v *videoFile) Write(f *frame.Frame) error {
	mat, err := matFromFrame(f)
	if err != nil {
		return err
	}
	defer mat.Close()
	return v.writer.Write(mat)
}

func (v *videoFile) Close() error {
	return v.writer.Close()
}
