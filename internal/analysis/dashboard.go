package analysis

import (
	"fmt"
	"math"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/project"
	"methodcost/internal/statistics"
)

// BuildDashboard computes the at-a-glance view over a user's projects. The
// Agile versus Waterfall comparison here is the quick estimate, not the
// full test used by Run.
func BuildDashboard(records []project.Project) domainAnalysis.Dashboard {
	partition := PartitionByMethodology(records)

	d := domainAnalysis.Dashboard{
		Summary: summarize(partition),
	}

	for _, r := range records {
		switch r.Status {
		case project.StatusCompleted:
			d.CompletedProjects++
		case project.StatusActive:
			d.ActiveProjects++
		case project.StatusOnHold:
			d.OnHoldProjects++
		}
	}

	d.AverageCostVariancePct = math.Floor(averageCostVariancePct(records)*10+0.5) / 10

	agileActual := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, partition.Agile))
	waterfallActual := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, partition.Waterfall))
	hybridActual := statistics.Summarize(MetricValues(domainAnalysis.MetricActualCost, partition.Hybrid))

	d.Agile = methodologyCosts(partition.Agile, agileActual.Mean)
	d.Waterfall = methodologyCosts(partition.Waterfall, waterfallActual.Mean)
	d.AverageHybridActual = hybridActual.Mean
	d.QuickComparison = statistics.QuickCompare(agileActual, waterfallActual)
	d.Insights = dashboardInsights(d, partition)

	return d
}

// averageCostVariancePct is the mean of per-project overrun percentages
// over projects with a positive planned cost.
func averageCostVariancePct(records []project.Project) float64 {
	sum := 0.0
	n := 0
	for _, r := range records {
		if r.PlannedCost > 0 {
			sum += (r.ActualCost - r.PlannedCost) / r.PlannedCost * 100
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func methodologyCosts(bucket []project.Project, averageActual float64) domainAnalysis.MethodologyCosts {
	planned := statistics.Summarize(plannedCosts(bucket)).Mean
	return domainAnalysis.MethodologyCosts{
		AveragePlanned:  planned,
		AverageActual:   averageActual,
		AverageVariance: math.Abs(averageActual - planned),
	}
}

func plannedCosts(bucket []project.Project) []float64 {
	values := make([]float64, len(bucket))
	for i, p := range bucket {
		values[i] = p.PlannedCost
	}
	return values
}

func dashboardInsights(d domainAnalysis.Dashboard, p Partition) []string {
	var insights []string

	if len(p.Agile) > 0 && len(p.Waterfall) > 0 {
		if d.Agile.AverageActual < d.Waterfall.AverageActual {
			insights = append(insights, fmt.Sprintf("Agile projects cost %s less on average",
				statistics.FormatCurrency(d.Waterfall.AverageActual-d.Agile.AverageActual)))
		} else {
			insights = append(insights, fmt.Sprintf("Waterfall projects cost %s less on average",
				statistics.FormatCurrency(d.Agile.AverageActual-d.Waterfall.AverageActual)))
		}
	}

	if d.Summary.TotalProjects > 0 {
		direction := "over"
		if d.AverageCostVariancePct < 0 {
			direction = "under"
		}
		insights = append(insights, fmt.Sprintf("Cost variance is %s budget by %s",
			direction, statistics.FormatPercentage(math.Abs(d.AverageCostVariancePct))))
	}

	if len(p.Hybrid) > 0 {
		insights = append(insights, fmt.Sprintf("Hybrid average cost: %s", statistics.FormatCurrency(d.AverageHybridActual)))
	}

	return insights
}
