// Precomputed 8-bit lookup tables for intensity transforms
package lut

import "math"

// Table maps every 8-bit intensity to its transformed value.
// Tables are built once and never mutated afterwards.
type Table [256]uint8

// NewTable evaluates f at every intensity in [0, 256), rounding to the
// nearest integer and clamping to [0, 255]. A nil f yields a nil table,
// which Apply treats as a no-op.
func NewTable(f Func) *Table {
	if f == nil {
		return nil
	}
	var t Table
	for i := range t {
		v := math.Round(f(float64(i)))
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		t[i] = uint8(v)
	}
	return &t
}

// Apply maps every byte of src through the table into dst. src and dst
// must have equal length and may be the same buffer. A nil table leaves
// dst untouched.
func (t *Table) Apply(src, dst []byte) {
	if t == nil {
		return
	}
	if len(src) != len(dst) {
		panic("lut: apply source and destination lengths differ")
	}
	for i, v := range src {
		dst[i] = t[v]
	}
}
