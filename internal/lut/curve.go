// Intensity curve construction from control points
package lut

import (
	"math"
	"sort"
)

// Point is a curve control point mapping input intensity X to output Y.
type Point struct {
	X float64
	Y float64
}

// Func transforms one intensity value. A nil Func means pass-through.
type Func func(float64) float64

// Curve builds an interpolation function through the given control points.
// Inputs must be strictly increasing. Fewer than 2 points yields nil.
// Four or more points use monotone cubic interpolation, fewer use linear.
// Inputs outside the control range are extrapolated, never rejected.
func Curve(points []Point) Func {
	if len(points) < 2 {
		return nil
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			panic("lut: curve control points must have strictly increasing X")
		}
	}
	if len(points) >= 4 {
		return monotoneCubic(points)
	}
	return piecewiseLinear(points)
}

// Compose returns a function applying g first, then f.
// A nil argument drops out; two nils compose to nil.
func Compose(f, g Func) Func {
	if f == nil {
		return g
	}
	if g == nil {
		return f
	}
	return func(x float64) float64 {
		return f(g(x))
	}
}

func piecewiseLinear(points []Point) Func {
	n := len(points)
	xs, ys := splitPoints(points)
	d := secants(xs, ys)

	return func(x float64) float64 {
		if x <= xs[0] {
			return ys[0] + d[0]*(x-xs[0])
		}
		if x >= xs[n-1] {
			return ys[n-1] + d[n-2]*(x-xs[n-1])
		}
		i := segmentIndex(xs, x)
		return ys[i] + d[i]*(x-xs[i])
	}
}

// monotoneCubic interpolates with the Fritsch-Carlson scheme: a cubic
// Hermite through every control point whose tangents are limited so the
// interpolant is monotone wherever the control data is monotone.
func monotoneCubic(points []Point) Func {
	n := len(points)
	xs, ys := splitPoints(points)
	d := secants(xs, ys)

	// One-sided tangents at the ends, averaged secants inside.
	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			m[i] = 0
		} else {
			m[i] = (d[i-1] + d[i]) / 2
		}
	}

	// Limit tangents segment by segment to preserve monotonicity.
	for i := 0; i < n-1; i++ {
		if d[i] == 0 {
			m[i] = 0
			m[i+1] = 0
			continue
		}
		a := m[i] / d[i]
		b := m[i+1] / d[i]
		if s := a*a + b*b; s > 9 {
			tau := 3 / math.Sqrt(s)
			m[i] = tau * a * d[i]
			m[i+1] = tau * b * d[i]
		}
	}

	return func(x float64) float64 {
		if x <= xs[0] {
			return ys[0] + m[0]*(x-xs[0])
		}
		if x >= xs[n-1] {
			return ys[n-1] + m[n-1]*(x-xs[n-1])
		}
		i := segmentIndex(xs, x)
		h := xs[i+1] - xs[i]
		t := (x - xs[i]) / h
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2
		return h00*ys[i] + h10*h*m[i] + h01*ys[i+1] + h11*h*m[i+1]
	}
}

func splitPoints(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// secants returns the slope of each segment between adjacent control points.
func secants(xs, ys []float64) []float64 {
	d := make([]float64, len(xs)-1)
	for i := range d {
		d[i] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}
	return d
}

// segmentIndex returns the index of the segment containing x,
// assuming xs[0] < x < xs[len(xs)-1].
func segmentIndex(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(xs)-2 {
		i = len(xs) - 2
	}
	return i
}
