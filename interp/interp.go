package interp

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrNotEnoughSamples = errors.New("not enough samples")
	ErrBadSamples       = errors.New("bad samples")
)

// Line1D is a piecewise linear interpolant over (x, y) samples. Outside the
// sampled range it extrapolates with the slope of the boundary segment.
type Line1D struct {
	xs []float64
	ys []float64
}

// NewLine1D fits an interpolant over the given samples. Pairs with a NaN
// member are dropped; at least 2 usable pairs are required.
func NewLine1D(xs, ys []float64) (*Line1D, error) {
	if len(xs) != len(ys) {
		return nil, ErrBadSamples
	}

	ln := &Line1D{}

	for idx := 0; idx < len(xs); idx++ {
		if isBad(xs[idx]) || isBad(ys[idx]) {
			continue
		}

		ln.xs = append(ln.xs, xs[idx])
		ln.ys = append(ln.ys, ys[idx])
	}

	if len(ln.xs) < 2 {
		return nil, ErrNotEnoughSamples
	}

	sort.Sort(byX{ln.xs, ln.ys})

	return ln, nil
}

func (ln *Line1D) Eval(x float64) float64 {
	n := len(ln.xs)

	idx := sort.SearchFloat64s(ln.xs, x)

	switch {
	case idx <= 0:
		idx = 1
	case idx >= n:
		idx = n - 1
	}

	return lerp(x, ln.xs[idx-1], ln.ys[idx-1], ln.xs[idx], ln.ys[idx])
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func lerp(x, x0, y0, x1, y1 float64) float64 {
	if x0 == x1 {
		return y0
	}

	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

type byX struct {
	xs []float64
	ys []float64
}

func (s byX) Len() int           { return len(s.xs) }
func (s byX) Less(i, j int) bool { return s.xs[i] < s.xs[j] }

func (s byX) Swap(i, j int) {
	s.xs[i], s.xs[j] = s.xs[j], s.xs[i]
	s.ys[i], s.ys[j] = s.ys[j], s.ys[i]
}
