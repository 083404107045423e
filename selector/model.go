package selector

import "fmt"

// Table is a column-oriented sample table as supplied by a catalog source.
// All columns have the same length; cells that held no parsable number are
// NaN. Immutable once loaded.
type Table struct {
	Names []string    `json:"names"`
	Cols  [][]float64 `json:"cols"`
}

// PumpTables bundles one pump's source tables. A nil table means the source
// has no such file; every computation that needs it is skipped.
type PumpTables struct {
	Boundary *Table
	Curves   *Table
	Power    *Table
}

// OperatingPoint is the requested (flow, head) pair a pump must satisfy.
type OperatingPoint struct {
	Flow float64
	Head float64
}

// PerformanceEstimate holds one pump's estimates at the operating point.
// Each field is independently optional: nil means not determinable, never
// zero.
type PerformanceEstimate struct {
	Diameter   *int
	Efficiency *float64
	Power      *float64
}

const notAvailable = "Not Available"

func (est PerformanceEstimate) DiameterLabel() string {
	if est.Diameter == nil {
		return notAvailable
	}

	return fmt.Sprintf("%d mm", *est.Diameter)
}

func (est PerformanceEstimate) EfficiencyLabel() string {
	if est.Efficiency == nil {
		return notAvailable
	}

	return fmt.Sprintf("%v %%", *est.Efficiency)
}

func (est PerformanceEstimate) PowerLabel() string {
	if est.Power == nil {
		return notAvailable
	}

	return fmt.Sprintf("%v W", *est.Power)
}

func (est PerformanceEstimate) String() string {
	return fmt.Sprintf("dia: %s | eff: %s | power: %s",
		est.DiameterLabel(), est.EfficiencyLabel(), est.PowerLabel())
}

// PumpResult pairs a suitable pump's identity with its estimate.
type PumpResult struct {
	Pump     string
	Estimate PerformanceEstimate
}
