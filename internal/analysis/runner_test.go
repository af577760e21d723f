package analysis

import (
	"math"
	"testing"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/domain/project"
	domainStats "methodcost/domain/stats"
	"methodcost/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proj(m project.Methodology, planned, actual float64) project.Project {
	return project.Project{Methodology: m, PlannedCost: planned, ActualCost: actual}
}

func TestRun_SampleProjects(t *testing.T) {
	result := Run(testkit.SampleProjects(core.DefaultUserID), domainAnalysis.DefaultMetrics)

	assert.Equal(t, domainAnalysis.Summary{
		TotalProjects:     5,
		AgileProjects:     2,
		WaterfallProjects: 2,
		HybridProjects:    1,
	}, result.Summary)

	actual := result.Metrics[domainAnalysis.MetricActualCost]
	require.NotNil(t, actual.Agile)
	require.NotNil(t, actual.Waterfall)
	require.NotNil(t, actual.Comparison)
	assert.Equal(t, 188500.0, actual.Agile.Mean)
	assert.Equal(t, 46500.0, actual.Agile.StandardDeviation)
	assert.Equal(t, 145000.0, actual.Waterfall.Mean)
	assert.Equal(t, 50000.0, actual.Waterfall.StandardDeviation)

	cmp := actual.Comparison
	assert.Equal(t, 43500.0, cmp.MeanDifference)
	assert.InDelta(t, 0.36761, cmp.PValue, 1e-4)
	assert.InDelta(t, 0.90096, cmp.EffectSize, 1e-4)
	assert.InDelta(t, 43500-94632.18, cmp.ConfidenceInterval[0], 0.01)
	assert.InDelta(t, 43500+94632.18, cmp.ConfidenceInterval[1], 0.01)
	assert.Equal(t, "No significant difference (p ≥ 0.05) with large effect size", cmp.Interpretation)

	variance := result.Metrics[domainAnalysis.MetricCostVariance]
	assert.Equal(t, 11500.0, variance.Agile.Mean)
	assert.Equal(t, 20000.0, variance.Waterfall.Mean)
	assert.Nil(t, variance.Comparison)

	rework := result.Metrics[domainAnalysis.MetricReworkCost]
	assert.Equal(t, 0.0, rework.Agile.Mean)
	assert.Equal(t, 2250.0, rework.Waterfall.Mean)
	assert.Nil(t, rework.Comparison)

	assert.Equal(t, []string{
		"Waterfall methodology shows lower average costs ($145,000 vs $188,500)",
		"Hybrid methodology average cost: $78,000",
	}, result.Recommendations)
}

func TestRun_EmptyRecords(t *testing.T) {
	result := Run(nil, []domainAnalysis.MetricKey{domainAnalysis.MetricActualCost, domainAnalysis.MetricReworkCost})

	assert.Equal(t, domainAnalysis.Summary{}, result.Summary)
	require.Len(t, result.Metrics, 2)
	for key, data := range result.Metrics {
		assert.Nil(t, data.Agile, key)
		assert.Nil(t, data.Waterfall, key)
		assert.Nil(t, data.Comparison, key)
	}
	assert.Equal(t, []string{NoProjectsRecommendation}, result.Recommendations)
}

func TestRun_EmptyMetricsUsesDefaults(t *testing.T) {
	result := Run(testkit.SampleProjects(core.DefaultUserID), nil)

	require.Len(t, result.Metrics, len(domainAnalysis.DefaultMetrics))
	for _, key := range domainAnalysis.DefaultMetrics {
		assert.Contains(t, result.Metrics, key)
	}
}

func TestRun_SummaryCountsAreConsistent(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 100, 120),
		proj("Scrumban", 100, 90),
		proj(project.MethodologyHybrid, 100, 80),
		proj("agile", 100, 100),
		proj(project.MethodologyWaterfall, 100, 130),
	}

	result := Run(records, []domainAnalysis.MetricKey{domainAnalysis.MetricActualCost})
	s := result.Summary

	assert.Equal(t, 5, s.TotalProjects)
	assert.Equal(t, 1, s.AgileProjects)
	assert.Equal(t, 1, s.WaterfallProjects)
	assert.Equal(t, 1, s.HybridProjects)
	assert.GreaterOrEqual(t, s.TotalProjects, s.AgileProjects+s.WaterfallProjects+s.HybridProjects)
	assert.Equal(t, 2, PartitionByMethodology(records).Unbucketed())
}

func TestRun_OnlyAgileProjects(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 100, 110),
		proj(project.MethodologyAgile, 200, 190),
	}

	result := Run(records, domainAnalysis.DefaultMetrics)
	actual := result.Metrics[domainAnalysis.MetricActualCost]

	require.NotNil(t, actual.Waterfall)
	assert.Equal(t, 0, actual.Waterfall.Count)
	assert.True(t, actual.Waterfall.IsEmpty())
	assert.Equal(t, 2, actual.Agile.Count)
	require.NotNil(t, actual.Comparison)
	assert.True(t, actual.Comparison.IsInsufficientData())
	assert.Equal(t, []string{InsufficientRecommendation}, result.Recommendations)
}

func TestRun_OnlyHybridProjects(t *testing.T) {
	result := Run([]project.Project{proj(project.MethodologyHybrid, 100, 1234.4)}, nil)
	assert.Equal(t, []string{"Hybrid methodology average cost: $1,234"}, result.Recommendations)
}

func TestRun_AgileCheaper(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 100, 100),
		proj(project.MethodologyAgile, 100, 200),
		proj(project.MethodologyWaterfall, 100, 300),
		proj(project.MethodologyWaterfall, 100, 500),
	}

	result := Run(records, nil)
	assert.Equal(t, []string{"Agile methodology shows lower average costs ($150 vs $400)"}, result.Recommendations)
}

func TestRun_EqualMeansFavourWaterfall(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 100, 100),
		proj(project.MethodologyWaterfall, 100, 100),
	}

	result := Run(records, nil)
	assert.Equal(t, "Waterfall methodology shows lower average costs ($100 vs $100)", result.Recommendations[0])
}

func TestRun_SingleProjectPerGroupPropagatesNaN(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 100, 100),
		proj(project.MethodologyWaterfall, 100, 150),
	}

	cmp := Run(records, nil).Metrics[domainAnalysis.MetricActualCost].Comparison
	require.NotNil(t, cmp)
	assert.Equal(t, -50.0, cmp.MeanDifference)
	// zero standard error: t is -Inf, p collapses to 0, pooled SD divides 0 by 0
	assert.Equal(t, 0.0, cmp.PValue)
	assert.True(t, math.IsNaN(cmp.EffectSize))
}

func TestRun_Deterministic(t *testing.T) {
	records := testkit.NewProjectGenerator(testkit.DefaultProjectConfig()).Generate(core.DefaultUserID)

	first := Run(records, nil)
	second := Run(records, nil)
	assert.Equal(t, first, second)
}

func TestRunWithTest_MannWhitney(t *testing.T) {
	records := []project.Project{
		proj(project.MethodologyAgile, 0, 100),
		proj(project.MethodologyAgile, 0, 110),
		proj(project.MethodologyAgile, 0, 90),
		proj(project.MethodologyAgile, 0, 95),
		proj(project.MethodologyAgile, 0, 105),
		proj(project.MethodologyWaterfall, 0, 150),
		proj(project.MethodologyWaterfall, 0, 140),
		proj(project.MethodologyWaterfall, 0, 160),
		proj(project.MethodologyWaterfall, 0, 155),
		proj(project.MethodologyWaterfall, 0, 145),
	}

	ttest := RunWithTest(records, nil, domainStats.TestTTest).Metrics[domainAnalysis.MetricActualCost].Comparison
	rank := RunWithTest(records, nil, domainStats.TestMannWhitney).Metrics[domainAnalysis.MetricActualCost].Comparison

	require.NotNil(t, ttest)
	require.NotNil(t, rank)
	assert.Equal(t, ttest.MeanDifference, rank.MeanDifference)
	assert.Equal(t, ttest.EffectSize, rank.EffectSize)
	assert.Equal(t, ttest.ConfidenceInterval, rank.ConfidenceInterval)
	assert.InDelta(t, 0.00902, rank.PValue, 1e-4)
}

func TestMetricValue(t *testing.T) {
	over := proj(project.MethodologyAgile, 1000, 1500)
	under := proj(project.MethodologyAgile, 1000, 800)

	tests := []struct {
		name string
		key  domainAnalysis.MetricKey
		p    project.Project
		want float64
	}{
		{"actual cost", domainAnalysis.MetricActualCost, over, 1500},
		{"variance over budget", domainAnalysis.MetricCostVariance, over, 500},
		{"variance under budget is absolute", domainAnalysis.MetricCostVariance, under, 200},
		{"rework on overrun", domainAnalysis.MetricReworkCost, over, 150},
		{"no rework under budget", domainAnalysis.MetricReworkCost, under, 0},
		{"unknown metric falls back to actual", "schedule", under, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MetricValue(tt.key, tt.p))
		})
	}
}

func TestPartitionByMethodology_PreservesOrder(t *testing.T) {
	records := []project.Project{
		{Name: "a1", Methodology: project.MethodologyAgile},
		{Name: "w1", Methodology: project.MethodologyWaterfall},
		{Name: "a2", Methodology: project.MethodologyAgile},
	}

	p := PartitionByMethodology(records)
	require.Len(t, p.Agile, 2)
	assert.Equal(t, "a1", p.Agile[0].Name)
	assert.Equal(t, "a2", p.Agile[1].Name)
	assert.Len(t, p.Waterfall, 1)
	assert.Empty(t, p.Hybrid)
	assert.Equal(t, 0, p.Unbucketed())
}
