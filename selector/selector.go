package selector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libpumpselect/boundary"
	"github.com/sgostarter/libpumpselect/interp"
)

// minEffSamples is the smallest pooled sample count a 2-D cubic scattered
// interpolation is well-posed on.
const minEffSamples = 4

func NewSelector(catalog Catalog, logger l.Wrapper, opts ...Option) *Selector {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "selectorImpl"))

	if catalog == nil {
		logger.Fatal("no catalog")
	}

	impl := &Selector{
		logger:  logger,
		catalog: catalog,
	}

	for _, opt := range opts {
		opt(&impl.opts)
	}

	return impl
}

type Selector struct {
	logger  l.Wrapper
	catalog Catalog
	opts    options
}

// FindSuitablePumps returns, in catalog enumeration order, every pump whose
// operating envelope contains the requested point, with its performance
// estimate. Pumps with no valid envelope, or whose point falls outside it,
// are excluded. One pump's defect never aborts the scan.
func (impl *Selector) FindSuitablePumps(flow, head float64) (results []PumpResult, err error) {
	if isBadValue(flow) || isBadValue(head) {
		err = ErrBadOperatingPoint

		return
	}

	names, err := impl.catalog.ListPumps()
	if err != nil {
		return
	}

	op := OperatingPoint{Flow: flow, Head: head}

	if impl.opts.concurrency > 1 {
		results = impl.scanParallel(names, op)

		return
	}

	for _, name := range names {
		if est, suitable := impl.evaluatePump(name, op); suitable {
			results = append(results, PumpResult{Pump: name, Estimate: est})
		}
	}

	return
}

func (impl *Selector) scanParallel(names []string, op OperatingPoint) (results []PumpResult) {
	type indexedResult struct {
		idx int
		r   PumpResult
	}

	type job struct {
		idx  int
		name string
	}

	var (
		lock      sync.Mutex
		collected []indexedResult
	)

	jobC := make(chan job)

	rm := routineman.NewRoutineMan(context.Background(), impl.logger)

	for n := 0; n < impl.opts.concurrency; n++ {
		rm.StartRoutine(func(ctx context.Context, _ func() bool) {
			for {
				select {
				case <-ctx.Done():
					return
				case jb, ok := <-jobC:
					if !ok {
						return
					}

					if est, suitable := impl.evaluatePump(jb.name, op); suitable {
						lock.Lock()
						collected = append(collected, indexedResult{idx: jb.idx, r: PumpResult{Pump: jb.name, Estimate: est}})
						lock.Unlock()
					}
				}
			}
		}, "scanWorker")
	}

	for idx, name := range names {
		jobC <- job{idx: idx, name: name}
	}

	close(jobC)

	rm.TriggerStop()
	rm.Wait()

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].idx < collected[j].idx
	})

	for _, ir := range collected {
		results = append(results, ir.r)
	}

	return
}

func (impl *Selector) evaluatePump(name string, op OperatingPoint) (est PerformanceEstimate, suitable bool) {
	logger := impl.logger.WithFields(l.StringField("pump", name))

	tables, err := impl.catalog.PumpTables(name)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Warn("load pump tables failed, pump excluded")

		return
	}

	poly := impl.buildBoundary(tables.Boundary, logger)
	if poly == nil {
		return
	}

	if !poly.Contains(op.Flow, op.Head) {
		logger.Debug("operating point outside envelope")

		return
	}

	suitable = true
	est = impl.estimate(tables, op, logger)

	return
}

func (impl *Selector) buildBoundary(t *Table, logger l.Wrapper) *boundary.Polygon {
	if t == nil {
		logger.Warn("no boundary table, pump excluded")

		return nil
	}

	flowIdx, ok := flowColumn(t)
	if !ok {
		logger.Warn("no flow column in boundary table, pump excluded")

		return nil
	}

	var headCurves [][]float64

	for idx := range t.Cols {
		if idx == flowIdx {
			continue
		}

		headCurves = append(headCurves, t.Cols[idx])
	}

	poly, err := boundary.Build(t.Cols[flowIdx], headCurves)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Warn("boundary build failed, pump excluded")

		return nil
	}

	return poly
}

// estimate runs the three sub-computations. Each one fails locally: a field
// that cannot be determined stays nil and never blocks the others.
func (impl *Selector) estimate(tables *PumpTables, op OperatingPoint, logger l.Wrapper) (est PerformanceEstimate) {
	if tables.Curves != nil {
		if flowIdx, ok := flowColumn(tables.Curves); ok {
			cs := parseCurveSet(tables.Curves, flowIdx, logger)

			est.Diameter = impl.selectDiameter(cs, op)
			est.Efficiency = impl.estimateEfficiency(cs, op)
		} else {
			logger.Warn("no flow column in curves table")
		}
	}

	if est.Diameter != nil {
		est.Power = impl.estimatePower(tables.Power, *est.Diameter, op, logger)
	}

	return
}

// selectDiameter picks the curve whose head at the requested flow meets or
// exceeds the required head while staying closest to it. Curves are visited
// in ascending diameter order, so on an exact distance tie the smallest
// diameter wins.
func (impl *Selector) selectDiameter(cs *curveSet, op OperatingPoint) (diameter *int) {
	var bestDist float64

	for _, hc := range cs.diameters {
		ln, err := interp.NewLine1D(hc.flows, hc.heads)
		if err != nil {
			continue
		}

		headOnCurve := ln.Eval(op.Flow)
		if headOnCurve < op.Head {
			continue
		}

		dist := headOnCurve - op.Head

		if diameter == nil || dist < bestDist {
			dia := hc.diameter
			diameter = &dia
			bestDist = dist
		}
	}

	return
}

// estimateEfficiency pools every (flow, head) sample of every efficiency
// curve into one scattered set valued with the curve's percentage tag, then
// interpolates cubic first, linear on a miss.
func (impl *Selector) estimateEfficiency(cs *curveSet, op OperatingPoint) *float64 {
	var xs, ys, vs []float64

	for _, ec := range cs.effs {
		for idx := 0; idx < len(ec.flows) && idx < len(ec.heads); idx++ {
			if isBadValue(ec.flows[idx]) || isBadValue(ec.heads[idx]) {
				continue
			}

			xs = append(xs, ec.flows[idx])
			ys = append(ys, ec.heads[idx])
			vs = append(vs, ec.efficiency)
		}
	}

	if len(xs) < minEffSamples {
		return nil
	}

	chain, err := interp.NewScatteredChain(xs, ys, vs, interp.NewCubicScattered, interp.NewLinearScattered)
	if err != nil {
		return nil
	}

	v, ok := chain.Eval(op.Flow, op.Head)
	if !ok {
		return nil
	}

	v = round2(v)

	return &v
}

// estimatePower is only attempted once a diameter was selected: the power
// curve is the column tagged with exactly that diameter.
func (impl *Selector) estimatePower(t *Table, diameter int, op OperatingPoint, logger l.Wrapper) *float64 {
	if t == nil {
		return nil
	}

	flowIdx, ok := flowColumn(t)
	if !ok {
		logger.Warn("no flow column in power table")

		return nil
	}

	colIdx, ok := powerColumn(t, diameter)
	if !ok {
		return nil
	}

	ln, err := interp.NewLine1D(t.Cols[flowIdx], t.Cols[colIdx])
	if err != nil {
		return nil
	}

	v := round2(ln.Eval(op.Flow))

	return &v
}

func isBadValue(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
