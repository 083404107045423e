package interp

import (
	"errors"
	"math"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/mat"
)

var ErrDegenerateSamples = errors.New("degenerate samples")

// Scattered2D estimates a value at an arbitrary 2-D point from irregularly
// placed samples. Eval reports ok=false when the point is outside the region
// the interpolant covers.
type Scattered2D interface {
	Eval(x, y float64) (v float64, ok bool)
}

// Scattered2DBuilder fits one interpolation method over a scattered sample set.
type Scattered2DBuilder func(xs, ys, vs []float64) (Scattered2D, error)

// NewScatteredChain fits the given methods in order. Builders that fail to fit
// are dropped; the chain evaluates the remaining ones in sequence until one
// yields a value.
func NewScatteredChain(xs, ys, vs []float64, builders ...Scattered2DBuilder) (Scattered2D, error) {
	var chain scatteredChain

	for _, builder := range builders {
		s, err := builder(xs, ys, vs)
		if err != nil {
			continue
		}

		chain = append(chain, s)
	}

	if len(chain) == 0 {
		return nil, ErrDegenerateSamples
	}

	return chain, nil
}

type scatteredChain []Scattered2D

func (chain scatteredChain) Eval(x, y float64) (v float64, ok bool) {
	for _, s := range chain {
		v, ok = s.Eval(x, y)
		if ok && !isBad(v) {
			return
		}
	}

	return 0, false
}

//
//
//

// NewCubicScattered fits a cubic radial basis interpolant, phi(r)=r^3 with a
// linear polynomial term. It only evaluates inside the convex hull of the
// samples, like the linear method.
func NewCubicScattered(xs, ys, vs []float64) (Scattered2D, error) {
	xs, ys, vs = dropBadSamples(xs, ys, vs)

	tri, err := triangulate(xs, ys)
	if err != nil {
		return nil, err
	}

	n := len(xs)
	dim := n + 3

	a := mat.NewDense(dim, dim, nil)
	b := mat.NewVecDense(dim, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, cubicKernel(xs[i]-xs[j], ys[i]-ys[j]))
		}

		a.Set(i, n, 1)
		a.Set(i, n+1, xs[i])
		a.Set(i, n+2, ys[i])

		a.Set(n, i, 1)
		a.Set(n+1, i, xs[i])
		a.Set(n+2, i, ys[i])

		b.SetVec(i, vs[i])
	}

	var w mat.VecDense

	if err = w.SolveVec(a, b); err != nil {
		return nil, ErrDegenerateSamples
	}

	return &cubicRBF{
		xs:  xs,
		ys:  ys,
		w:   w.RawVector().Data,
		tri: tri,
	}, nil
}

type cubicRBF struct {
	xs  []float64
	ys  []float64
	w   []float64 // n kernel weights, then 1, x, y coefficients
	tri *delaunay.Triangulation
}

func (impl *cubicRBF) Eval(x, y float64) (v float64, ok bool) {
	if !insideTriangulation(impl.tri, x, y) {
		return
	}

	n := len(impl.xs)

	v = impl.w[n] + impl.w[n+1]*x + impl.w[n+2]*y
	for i := 0; i < n; i++ {
		v += impl.w[i] * cubicKernel(x-impl.xs[i], y-impl.ys[i])
	}

	ok = !isBad(v)

	return
}

func cubicKernel(dx, dy float64) float64 {
	r := math.Hypot(dx, dy)

	return r * r * r
}

//
//
//

// NewLinearScattered fits a piecewise linear interpolant over the Delaunay
// triangulation of the samples, evaluated barycentrically per triangle.
func NewLinearScattered(xs, ys, vs []float64) (Scattered2D, error) {
	xs, ys, vs = dropBadSamples(xs, ys, vs)

	tri, err := triangulate(xs, ys)
	if err != nil {
		return nil, err
	}

	return &linearTIN{
		tri: tri,
		vs:  vs,
	}, nil
}

type linearTIN struct {
	tri *delaunay.Triangulation
	vs  []float64
}

func (impl *linearTIN) Eval(x, y float64) (v float64, ok bool) {
	for t := 0; t < len(impl.tri.Triangles); t += 3 {
		i0 := impl.tri.Triangles[t]
		i1 := impl.tri.Triangles[t+1]
		i2 := impl.tri.Triangles[t+2]

		u0, u1, u2, inside := barycentric(impl.tri.Points[i0], impl.tri.Points[i1], impl.tri.Points[i2], x, y)
		if !inside {
			continue
		}

		v = u0*impl.vs[i0] + u1*impl.vs[i1] + u2*impl.vs[i2]
		ok = !isBad(v)

		return
	}

	return 0, false
}

//
//
//

func triangulate(xs, ys []float64) (*delaunay.Triangulation, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return nil, ErrBadSamples
	}

	points := make([]delaunay.Point, 0, len(xs))
	for idx := range xs {
		points = append(points, delaunay.Point{X: xs[idx], Y: ys[idx]})
	}

	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, ErrDegenerateSamples
	}

	if len(tri.Triangles) == 0 {
		return nil, ErrDegenerateSamples
	}

	return tri, nil
}

func insideTriangulation(tri *delaunay.Triangulation, x, y float64) bool {
	for t := 0; t < len(tri.Triangles); t += 3 {
		_, _, _, inside := barycentric(tri.Points[tri.Triangles[t]], tri.Points[tri.Triangles[t+1]],
			tri.Points[tri.Triangles[t+2]], x, y)
		if inside {
			return true
		}
	}

	return false
}

const baryEps = 1e-9

func barycentric(a, b, c delaunay.Point, x, y float64) (u0, u1, u2 float64, inside bool) {
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return
	}

	u0 = ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / det
	u1 = ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / det
	u2 = 1 - u0 - u1

	inside = u0 >= -baryEps && u1 >= -baryEps && u2 >= -baryEps

	return
}

func dropBadSamples(xs, ys, vs []float64) (oxs, oys, ovs []float64) {
	for idx := 0; idx < len(xs) && idx < len(ys) && idx < len(vs); idx++ {
		if isBad(xs[idx]) || isBad(ys[idx]) || isBad(vs[idx]) {
			continue
		}

		oxs = append(oxs, xs[idx])
		oys = append(oys, ys[idx])
		ovs = append(ovs, vs[idx])
	}

	return
}
