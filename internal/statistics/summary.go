// Package statistics is the methodology comparison engine: descriptive
// statistics per sample, a t-test style group comparison and the cheaper
// inline estimate used by the dashboard. Every function is pure and safe
// for concurrent use.
package statistics

import (
	"sort"

	domainStats "methodcost/domain/stats"

	"github.com/montanaflynn/stats"
)

// Summarize reduces a sample to descriptive statistics. An empty sample
// yields the all-zero summary rather than an error. The standard deviation
// is the population one (divides by n).
func Summarize(values []float64) domainStats.SummaryStatistics {
	if len(values) == 0 {
		return domainStats.SummaryStatistics{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	// montanaflynn/stats only errors on empty input, which is handled above
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(sorted)
	stdDev, _ := stats.StandardDeviationPopulation(values)

	return domainStats.SummaryStatistics{
		Mean:              mean,
		Median:            median,
		StandardDeviation: stdDev,
		Count:             len(values),
		Min:               sorted[0],
		Max:               sorted[len(sorted)-1],
	}
}
