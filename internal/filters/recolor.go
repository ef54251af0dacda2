// Channel-mixing recolor filters
package filters

import "live-camera-filters/internal/frame"

// RecolorFilter rewrites each pixel's channels from the originals.
// The mix function receives (b, g, r) and returns the replacement pixel.
type RecolorFilter struct {
	name string
	mix  func(b, g, r byte) (byte, byte, byte)
}

func (f *RecolorFilter) Name() string {
	return f.name
}

func (f *RecolorFilter) Apply(src, dst *frame.Frame) {
	ensureSameSize(src, dst)
	s, d := src.Data, dst.Data
	for i := 0; i < len(s); i += frame.Channels {
		d[i], d[i+1], d[i+2] = f.mix(s[i], s[i+1], s[i+2])
	}
}

// NewRecolorRC simulates red-cyan duotone: blue and green average into
// a shared cyan channel while red stays put.
func NewRecolorRC() *RecolorFilter {
	return &RecolorFilter{
		name: "recolor rc",
		mix: func(b, g, r byte) (byte, byte, byte) {
			nb := byte((int(b) + int(g) + 1) / 2)
			return nb, nb, r
		},
	}
}

// NewRecolorRGV emphasizes red, green, and value by collapsing blue to
// the darkest channel.
func NewRecolorRGV() *RecolorFilter {
	return &RecolorFilter{
		name: "recolor rgv",
		mix: func(b, g, r byte) (byte, byte, byte) {
			return minByte(b, g, r), g, r
		},
	}
}

// NewRecolorCMV emphasizes cyan, magenta, and value by raising blue to
// the brightest channel.
func NewRecolorCMV() *RecolorFilter {
	return &RecolorFilter{
		name: "recolor cmv",
		mix: func(b, g, r byte) (byte, byte, byte) {
			return maxByte(b, g, r), g, r
		},
	}
}

func minByte(a, b, c byte) byte {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxByte(a, b, c byte) byte {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
