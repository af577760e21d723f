package statistics

import (
	"math"
	"testing"

	domainStats "methodcost/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickCompare_EmptyGroup(t *testing.T) {
	a := Summarize([]float64{1, 2, 3})
	assert.Nil(t, QuickCompare(a, domainStats.SummaryStatistics{}))
	assert.Nil(t, QuickCompare(domainStats.SummaryStatistics{}, a))
}

func TestQuickCompare_Buckets(t *testing.T) {
	// pooled SD is 1.25 for both groups below, so d = meanDifference / 1.25
	base := []float64{1.25, 3.75}
	shifted := func(delta float64) []float64 {
		return []float64{1.25 - delta, 3.75 - delta}
	}

	tests := []struct {
		name      string
		delta     float64
		wantP     float64
		wantLabel string
	}{
		{"small", 0.5, 0.1, "Small effect size"},
		{"exactly half is not medium", 0.625, 0.1, "Small effect size"},
		{"medium", 0.75, 0.05, "Medium effect size"},
		{"exactly 0.8 is not large", 1.0, 0.05, "Medium effect size"},
		{"large", 2.5, 0.05, "Large effect size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickCompare(Summarize(base), Summarize(shifted(tt.delta)))
			require.NotNil(t, got)
			assert.Equal(t, tt.wantP, got.PValue)
			assert.Equal(t, tt.wantLabel, got.Interpretation)
			assert.Equal(t, [2]float64{got.MeanDifference - 10000, got.MeanDifference + 10000}, got.ConfidenceInterval)
		})
	}
}

func TestQuickCompare_DivergesFromCompare(t *testing.T) {
	a := []float64{100, 110, 90, 95, 105}
	b := []float64{150, 140, 160, 155, 145}

	quick := QuickCompare(Summarize(a), Summarize(b))
	full := Compare(a, b)

	require.NotNil(t, quick)
	assert.Equal(t, full.MeanDifference, quick.MeanDifference)
	assert.Equal(t, full.EffectSize, quick.EffectSize)
	assert.NotEqual(t, full.PValue, quick.PValue)
	assert.NotEqual(t, full.Interpretation, quick.Interpretation)
}

func TestQuickCompare_SingleProjectEach(t *testing.T) {
	got := QuickCompare(Summarize([]float64{10}), Summarize([]float64{20}))
	require.NotNil(t, got)
	assert.True(t, math.IsNaN(got.EffectSize))
	assert.Equal(t, 0.1, got.PValue)
	assert.Equal(t, "Small effect size", got.Interpretation)
}
