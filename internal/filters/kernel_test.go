package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"live-camera-filters/internal/frame"
)

// Kernels whose weights sum to one must leave a flat image untouched.
func TestKernelFilters_FlatImageIsFixedPoint(t *testing.T) {
	tests := []struct {
		name   string
		filter *KernelFilter
	}{
		{"sharpen", NewSharpen()},
		{"blur", NewBlur()},
		{"emboss", NewEmboss()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := frame.New(50, 50)
			src.Fill(128, 128, 128)
			dst := frame.New(50, 50)
			tt.filter.Apply(src, dst)
			assert.Equal(t, src.Data, dst.Data)
		})
	}
}

func TestFindEdges_FlatImageGoesBlack(t *testing.T) {
	src := frame.New(10, 10)
	src.Fill(90, 90, 90)
	NewFindEdges().Apply(src, src)
	for _, v := range src.Data {
		assert.Equal(t, byte(0), v)
	}
}

func TestKernelFilter_InPlace(t *testing.T) {
	// Applying in place must equal applying into a fresh buffer.
	mk := func() *frame.Frame {
		f := frame.New(8, 6)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				f.SetAt(x, y, byte(x*30), byte(y*40), byte(x*y))
			}
		}
		return f
	}

	src := mk()
	want := frame.New(8, 6)
	NewSharpen().Apply(src, want)

	inPlace := mk()
	NewSharpen().Apply(inPlace, inPlace)
	assert.Equal(t, want.Data, inPlace.Data)
}

func TestKernelFilter_BlurAveragesNeighborhood(t *testing.T) {
	// A single bright pixel spreads 1/25th of its value over the 5x5
	// neighborhood centered on it.
	src := frame.New(9, 9)
	src.SetAt(4, 4, 250, 0, 0)
	dst := frame.New(9, 9)
	NewBlur().Apply(src, dst)

	b, _, _ := dst.At(4, 4)
	assert.Equal(t, byte(10), b)
	b, _, _ = dst.At(2, 2)
	assert.Equal(t, byte(10), b, "corner of the 5x5 window still sees the pixel")
	b, _, _ = dst.At(1, 4)
	assert.Equal(t, byte(0), b, "outside the window")
}

func TestNewKernelFilter_RejectsBadShapes(t *testing.T) {
	assert.Panics(t, func() { NewKernelFilter("bad", nil) })
	assert.Panics(t, func() { NewKernelFilter("bad", [][]float64{{1, 2}, {3, 4}}) })
	assert.Panics(t, func() { NewKernelFilter("bad", [][]float64{{1, 2, 3}, {4, 5}, {6, 7, 8}}) })
}
