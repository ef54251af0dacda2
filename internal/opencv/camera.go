package opencv

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"live-camera-filters/internal/frame"
)

// Camera adapts a gocv video capture device to the capture.Source
// interface. gocv fuses grab and decode into one Read call, so Grab is
// a liveness probe and Retrieve performs the single decode per cycle.
type Camera struct {
	device  *gocv.VideoCapture
	logger  *logrus.Logger
	readMat gocv.Mat
}

// OpenCamera opens the capture device with the given index.
func OpenCamera(deviceID int, logger *logrus.Logger) (*Camera, error) {
	device, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera device %d: %w", deviceID, err)
	}
	logger.WithFields(logrus.Fields{
		"device": deviceID,
		"width":  device.Get(gocv.VideoCaptureFrameWidth),
		"height": device.Get(gocv.VideoCaptureFrameHeight),
		"fps":    device.Get(gocv.VideoCaptureFPS),
	}).Info("Camera opened")
	return &Camera{
		device:  device,
		logger:  logger,
		readMat: gocv.NewMat(),
	}, nil
}

func (c *Camera) Grab() bool {
	return c.device.IsOpened()
}

func (c *Camera) Retrieve() (*frame.Frame, bool) {
	if !c.device.Read(&c.readMat) {
		return nil, false
	}
	f, err := frameFromMat(c.readMat)
	if err != nil {
		c.logger.WithError(err).Warn("Discarding undecodable frame")
		return nil, false
	}
	return f, true
}

func (c *Camera) FPS() float64 {
	return c.device.Get(gocv.VideoCaptureFPS)
}

func (c *Camera) FrameSize() (int, int) {
	return int(c.device.Get(gocv.VideoCaptureFrameWidth)),
		int(c.device.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the device and the reusable decode buffer.
func (c *Camera) Close() error {
	if err := c.readMat.Close(); err != nil {
		return err
	}
	return c.device.Close()
}
