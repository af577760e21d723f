package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	domainAnalysis "methodcost/domain/analysis"
	domainStats "methodcost/domain/stats"
	"methodcost/internal/statistics"

	"github.com/olekukonko/tablewriter"
)

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func meanCell(s *domainStats.SummaryStatistics) string {
	if s == nil || s.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%s (n=%d)", statistics.FormatCurrency(s.Mean), s.Count)
}

func printAnalysis(w io.Writer, a domainAnalysis.SavedAnalysis) {
	sum := a.Results.Summary
	fmt.Fprintf(w, "%s: %d projects (Agile %d, Waterfall %d, Hybrid %d)\n\n",
		a.Name, sum.TotalProjects, sum.AgileProjects, sum.WaterfallProjects, sum.HybridProjects)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Agile", "Waterfall", "Difference", "P-Value", "Effect Size", "Interpretation"})
	for _, key := range a.Results.MetricKeys(a.Configuration.Metrics) {
		data := a.Results.Metrics[key]
		row := []string{key.Label(), meanCell(data.Agile), meanCell(data.Waterfall), "-", "-", "-", "-"}
		if c := data.Comparison; c != nil {
			row[3] = statistics.FormatCurrency(c.MeanDifference)
			row[4] = num(c.PValue)
			row[5] = num(c.EffectSize)
			row[6] = c.Interpretation
		}
		table.Append(row)
	}
	table.Render()

	if len(a.Results.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range a.Results.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}

func printDashboard(w io.Writer, d domainAnalysis.Dashboard) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Figure", "Value"})
	table.AppendBulk([][]string{
		{"Projects", strconv.Itoa(d.Summary.TotalProjects)},
		{"Completed", strconv.Itoa(d.CompletedProjects)},
		{"Active", strconv.Itoa(d.ActiveProjects)},
		{"On Hold", strconv.Itoa(d.OnHoldProjects)},
		{"Average cost variance", statistics.FormatPercentage(d.AverageCostVariancePct)},
		{"Agile average actual", statistics.FormatCurrency(d.Agile.AverageActual)},
		{"Waterfall average actual", statistics.FormatCurrency(d.Waterfall.AverageActual)},
		{"Hybrid average actual", statistics.FormatCurrency(d.AverageHybridActual)},
	})
	table.Render()

	for _, insight := range d.Insights {
		fmt.Fprintf(w, "  - %s\n", insight)
	}
}

func printComparison(w io.Writer, d statistics.Detail) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Quantity", "Value"})
	rows := [][]string{
		{"Test", string(d.Test)},
		{"Mean A", num(d.GroupA.Mean)},
		{"Mean B", num(d.GroupB.Mean)},
		{"Mean difference", num(d.Result.MeanDifference)},
		{"Standard error", num(d.StandardError)},
		{"t statistic", num(d.TStatistic)},
		{"Welch df", num(d.DegreesOfFreedom)},
	}
	if d.Test == domainStats.TestMannWhitney {
		rows = append(rows, []string{"U statistic", num(d.UStatistic)})
	}
	rows = append(rows,
		[]string{"P-value", num(d.Result.PValue)},
		[]string{"Effect size", num(d.Result.EffectSize)},
		[]string{"95% CI", fmt.Sprintf("[%s, %s]", num(d.Result.ConfidenceInterval[0]), num(d.Result.ConfidenceInterval[1]))},
	)
	table.AppendBulk(rows)
	table.Render()
	fmt.Fprintln(w, d.Result.Interpretation)
}
