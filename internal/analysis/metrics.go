package analysis

import (
	"math"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/project"
)

// reworkShareOfOverrun is the fixed share of a budget overrun attributed to rework
const reworkShareOfOverrun = 0.3

// MetricValue derives the per-project scalar for a metric. Unknown metric
// keys fall back to the actual cost.
func MetricValue(key domainAnalysis.MetricKey, p project.Project) float64 {
	switch key {
	case domainAnalysis.MetricCostVariance:
		return math.Abs(p.ActualCost - p.PlannedCost)
	case domainAnalysis.MetricReworkCost:
		overrun := p.ActualCost - p.PlannedCost
		if overrun > 0 {
			return overrun * reworkShareOfOverrun
		}
		return 0
	default:
		return p.ActualCost
	}
}

// MetricValues maps every project in the bucket to its metric scalar
func MetricValues(key domainAnalysis.MetricKey, projects []project.Project) []float64 {
	values := make([]float64, len(projects))
	for i, p := range projects {
		values[i] = MetricValue(key, p)
	}
	return values
}
