package boundary

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var ErrNoBoundary = errors.New("no boundary")

const edgeEps = 1e-9

// Polygon is the closed (flow, head) operating envelope of a pump. The ring
// traces the upper head bound left to right, then the lower bound right to
// left, so it never self-intersects for head curves sampled on common flows.
type Polygon struct {
	ring orb.Ring
}

// Build constructs the envelope from per-row boundary samples: one flow per
// row and one head value per diameter curve. For every row the upper vertex
// is the max head across the curves and the lower vertex the min. Rows with
// no usable flow or head are skipped. Fewer than 3 resulting vertices means
// the pump has no valid envelope.
func Build(flows []float64, headCurves [][]float64) (*Polygon, error) {
	if len(flows) == 0 || len(headCurves) == 0 {
		return nil, ErrNoBoundary
	}

	var upper, lower orb.Ring

	for row, flow := range flows {
		if math.IsNaN(flow) {
			continue
		}

		hi := math.Inf(-1)
		lo := math.Inf(1)

		for _, curve := range headCurves {
			if row >= len(curve) || math.IsNaN(curve[row]) {
				continue
			}

			hi = math.Max(hi, curve[row])
			lo = math.Min(lo, curve[row])
		}

		if math.IsInf(hi, 0) {
			continue
		}

		upper = append(upper, orb.Point{flow, hi})
		lower = append(lower, orb.Point{flow, lo})
	}

	ring := upper
	for idx := len(lower) - 1; idx >= 0; idx-- {
		ring = append(ring, lower[idx])
	}

	if len(ring) < 3 {
		return nil, ErrNoBoundary
	}

	return &Polygon{ring: ring}, nil
}

// Contains reports whether the operating point lies inside the envelope.
// Points on an edge or vertex count as inside.
func (p *Polygon) Contains(flow, head float64) bool {
	pt := orb.Point{flow, head}

	if p.onEdge(pt) {
		return true
	}

	return planar.RingContains(p.ring, pt)
}

// Ring exposes the envelope vertices, upper bound first.
func (p *Polygon) Ring() orb.Ring {
	return p.ring
}

func (p *Polygon) onEdge(pt orb.Point) bool {
	for idx := range p.ring {
		a := p.ring[idx]
		b := p.ring[(idx+1)%len(p.ring)]

		if distToSegment(pt, a, b) <= edgeEps {
			return true
		}
	}

	return false
}

func distToSegment(pt, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(pt[0]-a[0], pt[1]-a[1])
	}

	t := ((pt[0]-a[0])*dx + (pt[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(pt[0]-(a[0]+t*dx), pt[1]-(a[1]+t*dy))
}
