package boundary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDiamondEnvelope(t *testing.T) {
	flows := []float64{0, 10, 20}
	upper := []float64{5, 10, 5}
	lower := []float64{1, 2, 1}

	poly, err := Build(flows, [][]float64{upper, lower})
	assert.Nil(t, err)

	// upper trace left to right, lower trace right to left
	assert.Len(t, poly.Ring(), 2*len(flows))

	assert.True(t, poly.Contains(10, 6))
	assert.False(t, poly.Contains(10, 11))
	assert.False(t, poly.Contains(10, 1))
	assert.False(t, poly.Contains(-5, 3))
}

func TestContainsEdgeInclusive(t *testing.T) {
	flows := []float64{0, 10, 20}
	upper := []float64{5, 10, 5}
	lower := []float64{1, 2, 1}

	poly, err := Build(flows, [][]float64{upper, lower})
	assert.Nil(t, err)

	// vertex
	assert.True(t, poly.Contains(10, 10))
	// on the upper edge between (0,5) and (10,10)
	assert.True(t, poly.Contains(5, 7.5))
	// on the closing segment between (0,1) and (0,5)
	assert.True(t, poly.Contains(0, 3))
}

func TestBuildPicksEnvelopePerRow(t *testing.T) {
	// curves cross: the envelope follows max/min per row, not per curve
	flows := []float64{0, 10}
	c1 := []float64{8, 2}
	c2 := []float64{3, 6}

	poly, err := Build(flows, [][]float64{c1, c2})
	assert.Nil(t, err)

	ring := poly.Ring()
	assert.Len(t, ring, 4)

	assert.InDelta(t, 8, ring[0][1], 1e-9)
	assert.InDelta(t, 6, ring[1][1], 1e-9)
	assert.InDelta(t, 2, ring[2][1], 1e-9)
	assert.InDelta(t, 3, ring[3][1], 1e-9)
}

func TestBuildSkipsBadRows(t *testing.T) {
	flows := []float64{0, math.NaN(), 10, 20}
	c1 := []float64{5, 9, 10, 5}
	c2 := []float64{1, 1, math.NaN(), 1}

	poly, err := Build(flows, [][]float64{c1, c2})
	assert.Nil(t, err)

	// the NaN flow row is dropped; the NaN head cell falls back to the
	// remaining curve for that row
	assert.Len(t, poly.Ring(), 6)
}

func TestBuildNoBoundary(t *testing.T) {
	_, err := Build(nil, nil)
	assert.ErrorIs(t, err, ErrNoBoundary)

	_, err = Build([]float64{1}, [][]float64{{2}})
	assert.ErrorIs(t, err, ErrNoBoundary)

	_, err = Build([]float64{math.NaN(), math.NaN()}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrNoBoundary)
}
