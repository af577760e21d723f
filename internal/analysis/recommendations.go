package analysis

import (
	"fmt"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/internal/statistics"
)

const (
	NoProjectsRecommendation   = "No projects available for analysis. Please add some projects first."
	InsufficientRecommendation = "Insufficient data for meaningful recommendations"
)

// Recommend produces the free-text findings for a partition: which of
// Agile/Waterfall is cheaper on average when both have projects, and the
// Hybrid average when Hybrid projects exist.
func Recommend(p Partition) []string {
	if p.Total == 0 {
		return []string{NoProjectsRecommendation}
	}

	var recommendations []string

	if len(p.Agile) > 0 && len(p.Waterfall) > 0 {
		agile := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, p.Agile))
		waterfall := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, p.Waterfall))

		if agile.Mean < waterfall.Mean {
			recommendations = append(recommendations, fmt.Sprintf("Agile methodology shows lower average costs (%s vs %s)",
				statistics.FormatCurrency(agile.Mean), statistics.FormatCurrency(waterfall.Mean)))
		} else {
			recommendations = append(recommendations, fmt.Sprintf("Waterfall methodology shows lower average costs (%s vs %s)",
				statistics.FormatCurrency(waterfall.Mean), statistics.FormatCurrency(agile.Mean)))
		}
	}

	if len(p.Hybrid) > 0 {
		hybrid := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, p.Hybrid))
		recommendations = append(recommendations, fmt.Sprintf("Hybrid methodology average cost: %s",
			statistics.FormatCurrency(hybrid.Mean)))
	}

	if len(recommendations) == 0 {
		return []string{InsufficientRecommendation}
	}
	return recommendations
}
