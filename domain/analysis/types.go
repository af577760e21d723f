package analysis

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/domain/stats"

	"github.com/google/uuid"
)

// MetricKey names a per-project scalar derived for comparison
type MetricKey string

const (
	MetricActualCost   MetricKey = "actualCost"
	MetricCostVariance MetricKey = "costVariance"
	MetricReworkCost   MetricKey = "reworkCost"
)

// DefaultMetrics is the metric set used when a configuration names none
var DefaultMetrics = []MetricKey{MetricActualCost, MetricCostVariance, MetricReworkCost}

// IsKnown reports whether k is a supported metric
func (k MetricKey) IsKnown() bool {
	switch k {
	case MetricActualCost, MetricCostVariance, MetricReworkCost:
		return true
	}
	return false
}

// DateRange bounds project start dates, inclusive on both ends
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Filters narrows the project set before analysis. Empty slices mean no filter.
type Filters struct {
	Methodology []project.Methodology `json:"methodology,omitempty"`
	Industry    []string              `json:"industry,omitempty"`
	Size        []project.Size        `json:"size,omitempty"`
	DateRange   *DateRange            `json:"dateRange,omitempty"`
}

// IsEmpty reports whether no filter is set
func (f Filters) IsEmpty() bool {
	return len(f.Methodology) == 0 && len(f.Industry) == 0 && len(f.Size) == 0 && f.DateRange == nil
}

// Config is an analysis request as submitted by a user
type Config struct {
	Name            string         `json:"name"`
	Filters         Filters        `json:"filters"`
	Metrics         []MetricKey    `json:"metrics"`
	StatisticalTest stats.TestType `json:"statisticalTest"`
}

// Summary counts projects per methodology. TotalProjects includes projects
// whose methodology is not recognised.
type Summary struct {
	TotalProjects     int `json:"totalProjects"`
	AgileProjects     int `json:"agileProjects"`
	WaterfallProjects int `json:"waterfallProjects"`
	HybridProjects    int `json:"hybridProjects"`
}

// MetricData holds the per-methodology statistics for one metric. Nil
// fields mean the metric was not computed.
type MetricData struct {
	Agile      *stats.SummaryStatistics `json:"agile"`
	Waterfall  *stats.SummaryStatistics `json:"waterfall"`
	Comparison *stats.ComparisonResult  `json:"comparison"`
}

// Result is the structured output of one analysis run
type Result struct {
	Summary         Summary                  `json:"summary"`
	Metrics         map[MetricKey]MetricData `json:"metrics"`
	Recommendations []string                 `json:"recommendations"`
}

// SavedAnalysis is a persisted analysis result together with its configuration
type SavedAnalysis struct {
	ID            core.AnalysisID  `json:"id"`
	UserID        uuid.UUID        `json:"userId"`
	Name          string           `json:"name"`
	ProjectIDs    []core.ProjectID `json:"projectIds"`
	Results       Result           `json:"results"`
	Configuration Config           `json:"configuration"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// MethodologyCosts is the dashboard chart triple for one methodology
type MethodologyCosts struct {
	AveragePlanned  float64 `json:"averagePlanned"`
	AverageActual   float64 `json:"averageActual"`
	AverageVariance float64 `json:"averageVariance"`
}

// Dashboard is the at-a-glance view over a user's projects
type Dashboard struct {
	Summary                Summary                 `json:"summary"`
	CompletedProjects      int                     `json:"completedProjects"`
	ActiveProjects         int                     `json:"activeProjects"`
	OnHoldProjects         int                     `json:"onHoldProjects"`
	AverageCostVariancePct float64                 `json:"averageCostVariancePct"`
	AverageHybridActual    float64                 `json:"averageHybridActual"`
	Agile                  MethodologyCosts        `json:"agile"`
	Waterfall              MethodologyCosts        `json:"waterfall"`
	QuickComparison        *stats.ComparisonResult `json:"quickComparison"`
	Insights               []string                `json:"insights"`
}

// MetricKeys returns the result's metric keys, those named in preferred
// first and in that order, then any others sorted by name
func (r Result) MetricKeys(preferred []MetricKey) []MetricKey {
	keys := make([]MetricKey, 0, len(r.Metrics))
	seen := make(map[MetricKey]bool, len(r.Metrics))
	for _, k := range preferred {
		if _, ok := r.Metrics[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []MetricKey
	for k := range r.Metrics {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(keys, rest...)
}

// Label splits a camelCase key into words: "costVariance" -> "Cost Variance"
func (k MetricKey) Label() string {
	var b strings.Builder
	for i, r := range string(k) {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
