// Package opencv implements the capture, display, and file-writing
// collaborators on top of gocv.
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"live-camera-filters/internal/frame"
)

// matFromFrame copies a frame into a 3-channel 8-bit BGR Mat.
// The caller owns the returned Mat and must Close it.
func matFromFrame(f *frame.Frame) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Data)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert frame to mat: %w", err)
	}
	return mat, nil
}

// frameFromMat copies a decoded Mat into a frame. Capture devices
// deliver CV8UC3 BGR; anything else is rejected rather than converted.
func frameFromMat(mat gocv.Mat) (*frame.Frame, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported mat type %v, want 8-bit BGR", mat.Type())
	}
	return frame.FromBytes(mat.Cols(), mat.Rows(), mat.ToBytes())
}
