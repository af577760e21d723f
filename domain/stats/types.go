package stats

import (
	"encoding/json"
	"math"
)

// TestType defines the statistical test used for the full group comparison
type TestType string

const (
	TestTTest       TestType = "ttest"       // Welch-style t-test with normal p-value
	TestMannWhitney TestType = "mannwhitney" // Mann-Whitney U rank test
)

// IsKnown reports whether t names an implemented test
func (t TestType) IsKnown() bool {
	return t == TestTTest || t == TestMannWhitney
}

// InsufficientDataInterpretation is the interpretation carried by the
// "cannot compare" sentinel.
const InsufficientDataInterpretation = "Insufficient data for comparison"

// SummaryStatistics describes one sample. A zero Count means "no data";
// every other field is then zero as well.
type SummaryStatistics struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standardDeviation"`
	Count             int     `json:"count"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
}

// IsEmpty reports whether the summary was computed from an empty sample
func (s SummaryStatistics) IsEmpty() bool {
	return s.Count == 0
}

// ComparisonResult is the outcome of comparing group A against group B.
// MeanDifference is A minus B.
type ComparisonResult struct {
	MeanDifference     float64    `json:"meanDifference"`
	PValue             float64    `json:"pValue"`
	EffectSize         float64    `json:"effectSize"`
	ConfidenceInterval [2]float64 `json:"confidenceInterval"`
	Interpretation     string     `json:"interpretation"`
}

// InsufficientData returns the sentinel used when either group is empty
func InsufficientData() ComparisonResult {
	return ComparisonResult{
		MeanDifference:     0,
		PValue:             1,
		EffectSize:         0,
		ConfidenceInterval: [2]float64{0, 0},
		Interpretation:     InsufficientDataInterpretation,
	}
}

// IsInsufficientData reports whether r is the "cannot compare" sentinel
func (r ComparisonResult) IsInsufficientData() bool {
	return r == InsufficientData()
}

// Non-finite floats are encoded as JSON null and decoded back as NaN, since
// degenerate groups legitimately produce NaN and Inf.

type jsonSummary struct {
	Mean              *float64 `json:"mean"`
	Median            *float64 `json:"median"`
	StandardDeviation *float64 `json:"standardDeviation"`
	Count             int      `json:"count"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
}

func (s SummaryStatistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSummary{
		Mean:              finite(s.Mean),
		Median:            finite(s.Median),
		StandardDeviation: finite(s.StandardDeviation),
		Count:             s.Count,
		Min:               finite(s.Min),
		Max:               finite(s.Max),
	})
}

func (s *SummaryStatistics) UnmarshalJSON(data []byte) error {
	var raw jsonSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SummaryStatistics{
		Mean:              orNaN(raw.Mean),
		Median:            orNaN(raw.Median),
		StandardDeviation: orNaN(raw.StandardDeviation),
		Count:             raw.Count,
		Min:               orNaN(raw.Min),
		Max:               orNaN(raw.Max),
	}
	return nil
}

type jsonComparison struct {
	MeanDifference     *float64    `json:"meanDifference"`
	PValue             *float64    `json:"pValue"`
	EffectSize         *float64    `json:"effectSize"`
	ConfidenceInterval [2]*float64 `json:"confidenceInterval"`
	Interpretation     string      `json:"interpretation"`
}

func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonComparison{
		MeanDifference:     finite(r.MeanDifference),
		PValue:             finite(r.PValue),
		EffectSize:         finite(r.EffectSize),
		ConfidenceInterval: [2]*float64{finite(r.ConfidenceInterval[0]), finite(r.ConfidenceInterval[1])},
		Interpretation:     r.Interpretation,
	})
}

func (r *ComparisonResult) UnmarshalJSON(data []byte) error {
	var raw jsonComparison
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ComparisonResult{
		MeanDifference:     orNaN(raw.MeanDifference),
		PValue:             orNaN(raw.PValue),
		EffectSize:         orNaN(raw.EffectSize),
		ConfidenceInterval: [2]float64{orNaN(raw.ConfidenceInterval[0]), orNaN(raw.ConfidenceInterval[1])},
		Interpretation:     raw.Interpretation,
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
