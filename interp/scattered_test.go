package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func utPlaneSamples() (xs, ys, vs []float64) {
	xs = []float64{0, 10, 10, 0, 5}
	ys = []float64{0, 0, 10, 10, 5}

	for idx := range xs {
		vs = append(vs, 1+2*xs[idx]+3*ys[idx])
	}

	return
}

func TestCubicScattered(t *testing.T) {
	xs, ys, vs := utPlaneSamples()

	s, err := NewCubicScattered(xs, ys, vs)
	assert.Nil(t, err)

	// the augmented cubic RBF reproduces a plane exactly
	v, ok := s.Eval(3, 4)
	assert.True(t, ok)
	assert.InDelta(t, 1+2*3+3*4, v, 1e-6)

	// sample points are interpolated
	v, ok = s.Eval(10, 10)
	assert.True(t, ok)
	assert.InDelta(t, vs[2], v, 1e-6)

	// outside the convex hull there is no value
	_, ok = s.Eval(20, 20)
	assert.False(t, ok)

	_, ok = s.Eval(-1, 5)
	assert.False(t, ok)
}

func TestLinearScattered(t *testing.T) {
	xs, ys, vs := utPlaneSamples()

	s, err := NewLinearScattered(xs, ys, vs)
	assert.Nil(t, err)

	v, ok := s.Eval(3, 4)
	assert.True(t, ok)
	assert.InDelta(t, 1+2*3+3*4, v, 1e-6)

	_, ok = s.Eval(20, 20)
	assert.False(t, ok)
}

func TestScatteredDegenerate(t *testing.T) {
	// collinear samples have no triangulation
	_, err := NewLinearScattered([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}, []float64{0, 1, 2, 3})
	assert.NotNil(t, err)
}

type utMissScattered struct{}

func (utMissScattered) Eval(_, _ float64) (float64, bool) { return 0, false }

type utConstScattered struct {
	v float64
}

func (s utConstScattered) Eval(_, _ float64) (float64, bool) { return s.v, true }

func TestScatteredChain(t *testing.T) {
	missBuilder := func(_, _, _ []float64) (Scattered2D, error) { return utMissScattered{}, nil }
	constBuilder := func(_, _, _ []float64) (Scattered2D, error) { return utConstScattered{v: 42}, nil }
	failBuilder := func(_, _, _ []float64) (Scattered2D, error) { return nil, errors.New("no fit") }

	chain, err := NewScatteredChain(nil, nil, nil, missBuilder, failBuilder, constBuilder)
	assert.Nil(t, err)

	v, ok := chain.Eval(0, 0)
	assert.True(t, ok)
	assert.InDelta(t, 42, v, 1e-9)

	chain, err = NewScatteredChain(nil, nil, nil, missBuilder)
	assert.Nil(t, err)

	_, ok = chain.Eval(0, 0)
	assert.False(t, ok)

	_, err = NewScatteredChain(nil, nil, nil, failBuilder)
	assert.ErrorIs(t, err, ErrDegenerateSamples)
}

func TestCubicThenLinearFallbackOrder(t *testing.T) {
	xs, ys, vs := utPlaneSamples()

	chain, err := NewScatteredChain(xs, ys, vs, NewCubicScattered, NewLinearScattered)
	assert.Nil(t, err)

	v, ok := chain.Eval(5, 5)
	assert.True(t, ok)
	assert.InDelta(t, 1+2*5+3*5, v, 1e-6)

	_, ok = chain.Eval(100, 100)
	assert.False(t, ok)
}
