// BGR frame buffer shared by capture, filters, and display
package frame

import "fmt"

// Channels is the number of interleaved channels in a frame (blue, green, red).
const Channels = 3

// Frame holds one video frame as an 8-bit interleaved BGR buffer.
// Pixels are row-major with a stride of Width*Channels bytes.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// New allocates a zeroed frame of the given size.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*Channels),
	}
}

// FromBytes wraps an existing BGR buffer, taking ownership of data.
func FromBytes(width, height int, data []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", width, height)
	}
	if len(data) != width*height*Channels {
		return nil, fmt.Errorf("buffer size %d does not match %dx%d BGR frame", len(data), width, height)
	}
	return &Frame{Width: width, Height: height, Data: data}, nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height, Data: make([]byte, len(f.Data))}
	copy(c.Data, f.Data)
	return c
}

// Mirrored returns a horizontally flipped copy of the frame.
func (f *Frame) Mirrored() *Frame {
	m := New(f.Width, f.Height)
	stride := f.Width * Channels
	for y := 0; y < f.Height; y++ {
		row := f.Data[y*stride : (y+1)*stride]
		out := m.Data[y*stride : (y+1)*stride]
		for x := 0; x < f.Width; x++ {
			src := x * Channels
			dst := (f.Width - 1 - x) * Channels
			out[dst] = row[src]
			out[dst+1] = row[src+1]
			out[dst+2] = row[src+2]
		}
	}
	return m
}

// Fill sets every pixel to the given BGR value.
func (f *Frame) Fill(b, g, r byte) {
	for i := 0; i < len(f.Data); i += Channels {
		f.Data[i] = b
		f.Data[i+1] = g
		f.Data[i+2] = r
	}
}

// At returns the BGR value of the pixel at (x, y).
func (f *Frame) At(x, y int) (b, g, r byte) {
	i := (y*f.Width + x) * Channels
	return f.Data[i], f.Data[i+1], f.Data[i+2]
}

// SetAt sets the BGR value of the pixel at (x, y).
func (f *Frame) SetAt(x, y int, b, g, r byte) {
	i := (y*f.Width + x) * Channels
	f.Data[i] = b
	f.Data[i+1] = g
	f.Data[i+2] = r
}

// SplitChannels copies the frame into three dense single-channel planes.
func (f *Frame) SplitChannels() (b, g, r []byte) {
	n := f.Width * f.Height
	b = make([]byte, n)
	g = make([]byte, n)
	r = make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = f.Data[i*Channels]
		g[i] = f.Data[i*Channels+1]
		r[i] = f.Data[i*Channels+2]
	}
	return b, g, r
}

// MergeChannels writes three dense single-channel planes back into the frame.
// The planes must each hold Width*Height bytes.
func (f *Frame) MergeChannels(b, g, r []byte) {
	n := f.Width * f.Height
	for i := 0; i < n; i++ {
		f.Data[i*Channels] = b[i]
		f.Data[i*Channels+1] = g[i]
		f.Data[i*Channels+2] = r[i]
	}
}
