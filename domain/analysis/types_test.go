package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricKey_Label(t *testing.T) {
	assert.Equal(t, "Actual Cost", MetricActualCost.Label())
	assert.Equal(t, "Cost Variance", MetricCostVariance.Label())
	assert.Equal(t, "Rework Cost", MetricReworkCost.Label())
	assert.Equal(t, "", MetricKey("").Label())
}

func TestResult_MetricKeys(t *testing.T) {
	r := Result{Metrics: map[MetricKey]MetricData{
		MetricReworkCost:   {},
		MetricActualCost:   {},
		MetricCostVariance: {},
		"zeta":             {},
	}}

	assert.Equal(t,
		[]MetricKey{MetricReworkCost, MetricActualCost, MetricCostVariance, "zeta"},
		r.MetricKeys([]MetricKey{MetricReworkCost, MetricActualCost, "missing", MetricActualCost}))
	assert.Equal(t,
		[]MetricKey{MetricActualCost, MetricCostVariance, MetricReworkCost, "zeta"},
		r.MetricKeys(nil))
}

func TestFilters_IsEmpty(t *testing.T) {
	assert.True(t, Filters{}.IsEmpty())
	assert.False(t, Filters{Industry: []string{"Retail"}}.IsEmpty())
	assert.False(t, Filters{DateRange: &DateRange{}}.IsEmpty())
}
