// Film emulation filters built on per-channel lookup tables
package filters

import (
	"live-camera-filters/internal/frame"
	"live-camera-filters/internal/lut"
)

// CurveFilter maps each BGR channel through a precomputed lookup table.
// Every table composes the filter's global value curve with the channel's
// own curve, so one table pass per channel covers both adjustments.
type CurveFilter struct {
	name  string
	blue  *lut.Table
	green *lut.Table
	red   *lut.Table
}

// NewCurveFilter builds per-channel tables from curve control points.
// Any point set may be nil or too short; that channel then passes
// through unchanged (for the value curve, it contributes nothing).
func NewCurveFilter(name string, value, blue, green, red []lut.Point) *CurveFilter {
	v := lut.Curve(value)
	return &CurveFilter{
		name:  name,
		blue:  lut.NewTable(lut.Compose(lut.Curve(blue), v)),
		green: lut.NewTable(lut.Compose(lut.Curve(green), v)),
		red:   lut.NewTable(lut.Compose(lut.Curve(red), v)),
	}
}

func (f *CurveFilter) Name() string {
	return f.name
}

func (f *CurveFilter) Apply(src, dst *frame.Frame) {
	ensureSameSize(src, dst)
	b, g, r := src.SplitChannels()
	f.blue.Apply(b, b)
	f.green.Apply(g, g)
	f.red.Apply(r, r)
	dst.MergeChannels(b, g, r)
}

// NewPortra emulates Kodak Portra film: warm, soft tones suited to portraits.
func NewPortra() *CurveFilter {
	return NewCurveFilter("portra",
		[]lut.Point{{X: 0, Y: 0}, {X: 23, Y: 20}, {X: 157, Y: 173}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 41, Y: 46}, {X: 231, Y: 228}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 52, Y: 47}, {X: 189, Y: 196}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 69, Y: 69}, {X: 213, Y: 218}, {X: 255, Y: 255}},
	)
}

// NewProvia emulates Fuji Provia film: vibrant but natural color.
func NewProvia() *CurveFilter {
	return NewCurveFilter("provia",
		nil,
		[]lut.Point{{X: 0, Y: 0}, {X: 35, Y: 25}, {X: 205, Y: 227}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 27, Y: 21}, {X: 196, Y: 207}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 59, Y: 54}, {X: 202, Y: 210}, {X: 255, Y: 255}},
	)
}

// NewVelvia emulates Fuji Velvia film: high contrast and deep saturation.
func NewVelvia() *CurveFilter {
	return NewCurveFilter("velvia",
		[]lut.Point{{X: 0, Y: 0}, {X: 128, Y: 118}, {X: 221, Y: 215}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 25, Y: 21}, {X: 122, Y: 153}, {X: 165, Y: 206}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 25, Y: 21}, {X: 95, Y: 102}, {X: 181, Y: 208}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 41, Y: 28}, {X: 183, Y: 209}, {X: 255, Y: 255}},
	)
}

// NewCrossProcess emulates cross-processed film: vintage, off-color casts.
func NewCrossProcess() *CurveFilter {
	return NewCurveFilter("cross",
		nil,
		[]lut.Point{{X: 0, Y: 20}, {X: 255, Y: 235}},
		[]lut.Point{{X: 0, Y: 0}, {X: 56, Y: 39}, {X: 208, Y: 226}, {X: 255, Y: 255}},
		[]lut.Point{{X: 0, Y: 0}, {X: 56, Y: 22}, {X: 211, Y: 255}, {X: 255, Y: 255}},
	)
}
