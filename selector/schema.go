package selector

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// Column naming conventions of the catalog tables: the flow column is named
// "flow" or "x", diameter curves embed the trim size as phi_<int>, efficiency
// curves embed the percentage as eff_<float>, power curves pair with a
// diameter as p_<int>. Matching is case and surrounding-space insensitive.
const (
	diameterTagPrefix = "phi_"
	effTagPrefix      = "eff_"
	powerTagPrefix    = "p_"
)

var (
	intTagRe   = regexp.MustCompile(`\d+`)
	floatTagRe = regexp.MustCompile(`\d+\.?\d*`)
)

type headCurve struct {
	diameter int
	flows    []float64
	heads    []float64
}

type effCurve struct {
	efficiency float64
	flows      []float64
	heads      []float64
}

// curveSet is the typed form of a head/efficiency table: the tagged columns
// resolved once, instead of re-inspecting names at every use site.
type curveSet struct {
	diameters []headCurve // ascending by diameter
	effs      []effCurve
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func flowColumn(t *Table) (idx int, ok bool) {
	for i, name := range t.Names {
		if n := normalizeColumn(name); n == "flow" || n == "x" {
			return i, true
		}
	}

	return 0, false
}

func parseCurveSet(t *Table, flowIdx int, logger l.Wrapper) *curveSet {
	cs := &curveSet{}

	for idx, name := range t.Names {
		if idx == flowIdx {
			continue
		}

		n := normalizeColumn(name)

		switch {
		case strings.HasPrefix(n, diameterTagPrefix):
			dia, err := cast.ToIntE(intTagRe.FindString(n))
			if err != nil {
				logger.WithFields(l.ErrorField(err), l.StringField("column", name)).
					Warn("no diameter tag in column, skipped")

				continue
			}

			cs.diameters = append(cs.diameters, headCurve{
				diameter: dia,
				flows:    t.Cols[flowIdx],
				heads:    t.Cols[idx],
			})
		case strings.HasPrefix(n, effTagPrefix):
			eff, err := cast.ToFloat64E(floatTagRe.FindString(n))
			if err != nil {
				logger.WithFields(l.ErrorField(err), l.StringField("column", name)).
					Warn("no efficiency tag in column, skipped")

				continue
			}

			cs.effs = append(cs.effs, effCurve{
				efficiency: eff,
				flows:      t.Cols[flowIdx],
				heads:      t.Cols[idx],
			})
		}
	}

	// ascending order makes the smallest diameter win distance ties
	sort.Slice(cs.diameters, func(i, j int) bool {
		return cs.diameters[i].diameter < cs.diameters[j].diameter
	})

	return cs
}

func powerColumn(t *Table, diameter int) (idx int, ok bool) {
	want := powerTagPrefix + cast.ToString(diameter)

	for i, name := range t.Names {
		if normalizeColumn(name) == want {
			return i, true
		}
	}

	return 0, false
}
