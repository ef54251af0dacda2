// Edge-darkening stroke filter
package filters

import "live-camera-filters/internal/frame"

const (
	defaultStrokeBlurKsize = 7
	defaultStrokeEdgeKsize = 5
)

// StrokeEdges darkens pixels along detected edges, giving frames a
// hand-inked comic look. The source is optionally median-blurred to
// suppress sensor noise, reduced to intensity, run through an edge
// operator, and the inverted edge magnitude scales every color channel.
type StrokeEdges struct {
	blurKsize int
	edgeKsize int
}

// NewStrokeEdges returns the filter with the stock kernel sizes.
func NewStrokeEdges() *StrokeEdges {
	return NewStrokeEdgesWith(defaultStrokeBlurKsize, defaultStrokeEdgeKsize)
}

// NewStrokeEdgesWith sets the median-blur and edge kernel sizes.
// A blur size below 3 disables the blur pass.
func NewStrokeEdgesWith(blurKsize, edgeKsize int) *StrokeEdges {
	if edgeKsize < 3 || edgeKsize%2 == 0 {
		panic("filters: edge kernel size must be odd and at least 3")
	}
	return &StrokeEdges{blurKsize: blurKsize, edgeKsize: edgeKsize}
}

func (*StrokeEdges) Name() string {
	return "stroke edges"
}

func (s *StrokeEdges) Apply(src, dst *frame.Frame) {
	ensureSameSize(src, dst)
	w, h := src.Width, src.Height
	b, g, r := src.SplitChannels()

	eb, eg, er := b, g, r
	if s.blurKsize >= 3 {
		eb = medianBlurPlane(b, w, h, s.blurKsize)
		eg = medianBlurPlane(g, w, h, s.blurKsize)
		er = medianBlurPlane(r, w, h, s.blurKsize)
	}

	gray := grayPlane(eb, eg, er)
	edges := laplacianPlane(gray, w, h, s.edgeKsize)

	// Scale the original channels by the inverted edge magnitude:
	// strong edges go dark, flat regions pass through unchanged.
	for i, e := range edges {
		alpha := float64(255-e) / 255
		b[i] = clampByte(alpha * float64(b[i]))
		g[i] = clampByte(alpha * float64(g[i]))
		r[i] = clampByte(alpha * float64(r[i]))
	}
	dst.MergeChannels(b, g, r)
}

// grayPlane converts BGR planes to intensity with BT.601 weights,
// matching what the capture stack's own color conversion uses.
func grayPlane(b, g, r []byte) []byte {
	gray := make([]byte, len(b))
	for i := range gray {
		gray[i] = clampByte(0.114*float64(b[i]) + 0.587*float64(g[i]) + 0.299*float64(r[i]))
	}
	return gray
}

// laplacianPlane measures local intensity change with a zero-sum kernel:
// every weight -1 and the center ksize*ksize-1. Uniform regions respond
// with exactly zero. Returns the absolute response clamped to [0, 255].
func laplacianPlane(src []byte, width, height, ksize int) []byte {
	radius := ksize / 2
	center := float64(ksize*ksize - 1)
	out := make([]byte, len(src))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -radius; ky <= radius; ky++ {
				sy := clampIndex(y+ky, height)
				for kx := -radius; kx <= radius; kx++ {
					sx := clampIndex(x+kx, width)
					sum -= float64(src[sy*width+sx])
				}
			}
			sum += (center + 1) * float64(src[y*width+x])
			if sum < 0 {
				sum = -sum
			}
			out[y*width+x] = clampByte(sum)
		}
	}
	return out
}

// medianBlurPlane replaces each pixel with the median of its ksize
// window, using Huang's sliding histogram so moving one column right
// only touches 2*ksize samples. Borders replicate edge pixels.
func medianBlurPlane(src []byte, width, height, ksize int) []byte {
	radius := ksize / 2
	half := ksize*ksize/2 + 1
	out := make([]byte, len(src))

	var hist [256]int
	for y := 0; y < height; y++ {
		hist = [256]int{}
		for ky := -radius; ky <= radius; ky++ {
			sy := clampIndex(y+ky, height)
			for kx := -radius; kx <= radius; kx++ {
				hist[src[sy*width+clampIndex(kx, width)]]++
			}
		}
		out[y*width] = histMedian(&hist, half)

		for x := 1; x < width; x++ {
			for ky := -radius; ky <= radius; ky++ {
				sy := clampIndex(y+ky, height)
				hist[src[sy*width+clampIndex(x-radius-1, width)]]--
				hist[src[sy*width+clampIndex(x+radius, width)]]++
			}
			out[y*width+x] = histMedian(&hist, half)
		}
	}
	return out
}

func histMedian(hist *[256]int, half int) byte {
	count := 0
	for v, n := range hist {
		count += n
		if count >= half {
			return byte(v)
		}
	}
	return 255
}
