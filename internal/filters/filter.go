// Frame filters with a uniform apply contract
package filters

import "live-camera-filters/internal/frame"

// Filter transforms a source frame into a destination frame of the same
// dimensions. dst may alias src; implementations tolerate writing into
// the buffer they read from.
type Filter interface {
	Name() string
	Apply(src, dst *frame.Frame)
}

// Identity is the "no filter" entry. Applying it copies src into dst
// when they are distinct buffers and does nothing otherwise.
type Identity struct{}

// NewIdentity returns the pass-through filter.
func NewIdentity() *Identity {
	return &Identity{}
}

func (*Identity) Name() string {
	return "none"
}

func (*Identity) Apply(src, dst *frame.Frame) {
	ensureSameSize(src, dst)
	if src == dst {
		return
	}
	copy(dst.Data, src.Data)
}

// ensureSameSize guards the shared apply contract: src and dst must have
// equal dimensions. A mismatch is a caller bug, not a runtime condition.
func ensureSameSize(src, dst *frame.Frame) {
	if src.Width != dst.Width || src.Height != dst.Height {
		panic("filters: source and destination dimensions differ")
	}
}
