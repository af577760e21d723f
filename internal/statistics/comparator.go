package statistics

import (
	"math"

	domainStats "methodcost/domain/stats"
)

// criticalValue95 is the large-sample z value used for every confidence
// interval, regardless of group sizes.
const criticalValue95 = 1.96

// Detail is a comparison together with the intermediate quantities that
// produced it.
type Detail struct {
	Result           domainStats.ComparisonResult
	GroupA           domainStats.SummaryStatistics
	GroupB           domainStats.SummaryStatistics
	StandardError    float64
	TStatistic       float64
	DegreesOfFreedom float64
	UStatistic       float64
	Test             domainStats.TestType
}

// Compare contrasts groupA with groupB using the Welch-style t-test.
// The p-value treats the t statistic as standard normal; degrees of
// freedom do not enter it. Zero-variance groups are not guarded and
// propagate NaN or Inf.
func Compare(groupA, groupB []float64) domainStats.ComparisonResult {
	return CompareDetailed(domainStats.TestTTest, groupA, groupB).Result
}

// CompareWith runs the comparison with the requested test. Unknown tests
// fall back to the t-test; callers validate configuration beforehand.
func CompareWith(test domainStats.TestType, groupA, groupB []float64) domainStats.ComparisonResult {
	return CompareDetailed(test, groupA, groupB).Result
}

// CompareDetailed is Compare with the intermediate values exposed
func CompareDetailed(test domainStats.TestType, groupA, groupB []float64) Detail {
	statsA := Summarize(groupA)
	statsB := Summarize(groupB)

	detail := Detail{GroupA: statsA, GroupB: statsB, Test: test}
	if statsA.Count == 0 || statsB.Count == 0 {
		detail.Result = domainStats.InsufficientData()
		return detail
	}

	varA := statsA.StandardDeviation * statsA.StandardDeviation
	varB := statsB.StandardDeviation * statsB.StandardDeviation
	nA := float64(statsA.Count)
	nB := float64(statsB.Count)

	meanDifference := statsA.Mean - statsB.Mean
	standardError := math.Sqrt(varA/nA + varB/nB)
	tStatistic := meanDifference / standardError

	detail.StandardError = standardError
	detail.TStatistic = tStatistic
	detail.DegreesOfFreedom = welchDegreesOfFreedom(varA, statsA.Count, varB, statsB.Count)

	var pValue float64
	switch test {
	case domainStats.TestMannWhitney:
		detail.UStatistic = MannWhitneyU(groupA, groupB)
		pValue = MannWhitneyPValue(detail.UStatistic, statsA.Count, statsB.Count)
	default:
		detail.Test = domainStats.TestTTest
		pValue = 2 * (1 - NormalCDF(math.Abs(tStatistic)))
	}

	pooledSD := math.Sqrt(((nA-1)*varA + (nB-1)*varB) / (nA + nB - 2))
	effectSize := meanDifference / pooledSD

	marginOfError := criticalValue95 * standardError

	detail.Result = domainStats.ComparisonResult{
		MeanDifference:     meanDifference,
		PValue:             pValue,
		EffectSize:         effectSize,
		ConfidenceInterval: [2]float64{meanDifference - marginOfError, meanDifference + marginOfError},
		Interpretation:     Interpret(pValue, effectSize),
	}
	return detail
}

// Interpret renders the significance and effect-magnitude phrases. The
// first bucket whose strict upper bound exceeds the value wins; NaN falls
// through to the last bucket of each scale.
func Interpret(pValue, effectSize float64) string {
	return significancePhrase(pValue) + " with " + magnitudePhrase(effectSize)
}

func significancePhrase(pValue float64) string {
	switch {
	case pValue < 0.001:
		return "Highly significant difference (p < 0.001)"
	case pValue < 0.01:
		return "Very significant difference (p < 0.01)"
	case pValue < 0.05:
		return "Significant difference (p < 0.05)"
	default:
		return "No significant difference (p ≥ 0.05)"
	}
}

func magnitudePhrase(effectSize float64) string {
	magnitude := math.Abs(effectSize)
	switch {
	case magnitude < 0.2:
		return "negligible effect size"
	case magnitude < 0.5:
		return "small effect size"
	case magnitude < 0.8:
		return "medium effect size"
	default:
		return "large effect size"
	}
}
