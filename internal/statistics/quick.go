package statistics

import (
	"math"

	domainStats "methodcost/domain/stats"
)

// quickIntervalHalfWidth is the fixed half-width of the quick estimate's
// interval, in currency units.
const quickIntervalHalfWidth = 10000

// QuickCompare is the cheap estimate shown on the dashboard. Only the mean
// difference and Cohen's d are computed; the p-value is a two-level
// stand-in (0.05 when |d| > 0.5, otherwise 0.1) and the interval is a fixed
// band. It returns nil when either summary is empty. It is intentionally
// not equivalent to Compare.
func QuickCompare(a, b domainStats.SummaryStatistics) *domainStats.ComparisonResult {
	if a.Count == 0 || b.Count == 0 {
		return nil
	}

	meanDifference := a.Mean - b.Mean
	nA := float64(a.Count)
	nB := float64(b.Count)
	varA := a.StandardDeviation * a.StandardDeviation
	varB := b.StandardDeviation * b.StandardDeviation
	pooledSD := math.Sqrt(((nA-1)*varA + (nB-1)*varB) / (nA + nB - 2))
	effectSize := meanDifference / pooledSD
	magnitude := math.Abs(effectSize)

	pValue := 0.1
	if magnitude > 0.5 {
		pValue = 0.05
	}

	interpretation := "Small effect size"
	switch {
	case magnitude > 0.8:
		interpretation = "Large effect size"
	case magnitude > 0.5:
		interpretation = "Medium effect size"
	}

	return &domainStats.ComparisonResult{
		MeanDifference:     meanDifference,
		PValue:             pValue,
		EffectSize:         effectSize,
		ConfidenceInterval: [2]float64{meanDifference - quickIntervalHalfWidth, meanDifference + quickIntervalHalfWidth},
		Interpretation:     interpretation,
	}
}
