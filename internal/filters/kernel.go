// Fixed-kernel convolution filters
package filters

import "live-camera-filters/internal/frame"

// KernelFilter convolves every channel of a frame with a small square
// kernel. Borders replicate the nearest edge pixel and results clamp to
// [0, 255]. The kernel is fixed at construction and never mutated.
type KernelFilter struct {
	name    string
	size    int
	weights []float64
	scratch []byte
}

// NewKernelFilter builds a convolution filter from a square weight matrix.
// The matrix must be odd-sized; anything else is a construction bug.
func NewKernelFilter(name string, kernel [][]float64) *KernelFilter {
	size := len(kernel)
	if size == 0 || size%2 == 0 {
		panic("filters: convolution kernel must be square with odd size")
	}
	weights := make([]float64, 0, size*size)
	for _, row := range kernel {
		if len(row) != size {
			panic("filters: convolution kernel must be square with odd size")
		}
		weights = append(weights, row...)
	}
	return &KernelFilter{name: name, size: size, weights: weights}
}

func (k *KernelFilter) Name() string {
	return k.name
}

// Apply convolves src into dst. The two may be the same frame; the
// filter reads through an internal snapshot so in-place use is safe.
func (k *KernelFilter) Apply(src, dst *frame.Frame) {
	ensureSameSize(src, dst)
	if len(k.scratch) != len(src.Data) {
		k.scratch = make([]byte, len(src.Data))
	}
	copy(k.scratch, src.Data)
	convolve(k.scratch, dst.Data, src.Width, src.Height, k.size, k.weights)
}

// convolve runs the kernel over every channel of an interleaved BGR
// buffer. src and dst must be distinct buffers of the same size.
func convolve(src, dst []byte, width, height, ksize int, weights []float64) {
	radius := ksize / 2
	stride := width * frame.Channels
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < frame.Channels; c++ {
				var sum float64
				for ky := 0; ky < ksize; ky++ {
					sy := clampIndex(y+ky-radius, height)
					for kx := 0; kx < ksize; kx++ {
						sx := clampIndex(x+kx-radius, width)
						sum += weights[ky*ksize+kx] * float64(src[sy*stride+sx*frame.Channels+c])
					}
				}
				dst[y*stride+x*frame.Channels+c] = clampByte(sum)
			}
		}
	}
}

// clampIndex replicates edge pixels for samples outside the image.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

// NewSharpen accentuates local contrast around every pixel.
func NewSharpen() *KernelFilter {
	return NewKernelFilter("sharpen", [][]float64{
		{-1, -1, -1},
		{-1, 9, -1},
		{-1, -1, -1},
	})
}

// NewFindEdges keeps only local intensity changes; flat regions go black.
func NewFindEdges() *KernelFilter {
	return NewKernelFilter("edges", [][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	})
}

// NewBlur averages over a 5x5 neighborhood.
func NewBlur() *KernelFilter {
	w := make([][]float64, 5)
	for i := range w {
		w[i] = []float64{0.04, 0.04, 0.04, 0.04, 0.04}
	}
	return NewKernelFilter("blur", w)
}

// NewEmboss shades by the diagonal intensity gradient.
func NewEmboss() *KernelFilter {
	return NewKernelFilter("emboss", [][]float64{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	})
}
