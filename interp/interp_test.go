package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine1D(t *testing.T) {
	ln, err := NewLine1D([]float64{0, 10, 20}, []float64{0, 10, 30})
	assert.Nil(t, err)

	assert.InDelta(t, 0, ln.Eval(0), 1e-9)
	assert.InDelta(t, 10, ln.Eval(10), 1e-9)
	assert.InDelta(t, 30, ln.Eval(20), 1e-9)

	assert.InDelta(t, 5, ln.Eval(5), 1e-9)
	assert.InDelta(t, 20, ln.Eval(15), 1e-9)
}

func TestLine1DExtrapolation(t *testing.T) {
	ln, err := NewLine1D([]float64{0, 10, 20}, []float64{0, 10, 30})
	assert.Nil(t, err)

	// left of the range: first segment slope 1
	assert.InDelta(t, -5, ln.Eval(-5), 1e-9)
	// right of the range: last segment slope 2
	assert.InDelta(t, 50, ln.Eval(30), 1e-9)
}

func TestLine1DUnsortedSamples(t *testing.T) {
	ln, err := NewLine1D([]float64{20, 0, 10}, []float64{30, 0, 10})
	assert.Nil(t, err)

	assert.InDelta(t, 5, ln.Eval(5), 1e-9)
	assert.InDelta(t, 20, ln.Eval(15), 1e-9)
}

func TestLine1DDropsNaN(t *testing.T) {
	ln, err := NewLine1D([]float64{0, math.NaN(), 10}, []float64{0, 5, 10})
	assert.Nil(t, err)

	assert.InDelta(t, 5, ln.Eval(5), 1e-9)

	_, err = NewLine1D([]float64{0, math.NaN()}, []float64{0, 5})
	assert.ErrorIs(t, err, ErrNotEnoughSamples)
}

func TestLine1DBadSamples(t *testing.T) {
	_, err := NewLine1D([]float64{0, 1}, []float64{0})
	assert.ErrorIs(t, err, ErrBadSamples)

	_, err = NewLine1D([]float64{0}, []float64{0})
	assert.ErrorIs(t, err, ErrNotEnoughSamples)
}
