package analysis

import (
	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/project"
	domainStats "methodcost/domain/stats"
	"methodcost/internal/statistics"
)

// Run analyses records with the t-test comparison. See RunWithTest.
func Run(records []project.Project, metrics []domainAnalysis.MetricKey) domainAnalysis.Result {
	return RunWithTest(records, metrics, domainStats.TestTTest)
}

// RunWithTest partitions records by methodology and summarises each
// requested metric for the Agile and Waterfall buckets. Only actualCost
// carries a comparison; Hybrid is counted and mentioned in the
// recommendations but never compared. An empty metric list means
// DefaultMetrics. It never fails: degenerate inputs surface as NaN or Inf.
func RunWithTest(records []project.Project, metrics []domainAnalysis.MetricKey, test domainStats.TestType) domainAnalysis.Result {
	if len(metrics) == 0 {
		metrics = domainAnalysis.DefaultMetrics
	}

	if len(records) == 0 {
		return emptyResult(metrics)
	}

	partition := PartitionByMethodology(records)

	result := domainAnalysis.Result{
		Summary: summarize(partition),
		Metrics: make(map[domainAnalysis.MetricKey]domainAnalysis.MetricData, len(metrics)),
	}

	for _, key := range metrics {
		agileValues := MetricValues(key, partition.Agile)
		waterfallValues := MetricValues(key, partition.Waterfall)

		agile := statistics.Summarize(agileValues)
		waterfall := statistics.Summarize(waterfallValues)

		data := domainAnalysis.MetricData{
			Agile:     &agile,
			Waterfall: &waterfall,
		}
		if key == domainAnalysis.MetricActualCost {
			comparison := statistics.CompareWith(test, agileValues, waterfallValues)
			data.Comparison = &comparison
		}
		result.Metrics[key] = data
	}

	result.Recommendations = Recommend(partition)
	return result
}

func summarize(p Partition) domainAnalysis.Summary {
	return domainAnalysis.Summary{
		TotalProjects:     p.Total,
		AgileProjects:     len(p.Agile),
		WaterfallProjects: len(p.Waterfall),
		HybridProjects:    len(p.Hybrid),
	}
}

func emptyResult(metrics []domainAnalysis.MetricKey) domainAnalysis.Result {
	result := domainAnalysis.Result{
		Metrics:         make(map[domainAnalysis.MetricKey]domainAnalysis.MetricData, len(metrics)),
		Recommendations: []string{NoProjectsRecommendation},
	}
	for _, key := range metrics {
		result.Metrics[key] = domainAnalysis.MetricData{}
	}
	return result
}
