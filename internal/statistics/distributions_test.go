package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErf_MatchesStandardLibrary(t *testing.T) {
	for x := -4.0; x <= 4.0; x += 0.05 {
		assert.InDelta(t, math.Erf(x), erf(x), 2e-7, "x=%v", x)
	}
	assert.Equal(t, -1.0, erf(math.Inf(-1)))
	assert.Equal(t, 1.0, erf(math.Inf(1)))
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-8)
	assert.InDelta(t, 0.975, NormalCDF(1.96), 1e-4)
	assert.InDelta(t, 0.025, NormalCDF(-1.96), 1e-4)
}

func TestMannWhitneyU_Ties(t *testing.T) {
	// pooled ranks: 1,2 -> 1.5 each for the tie at 1; a holds ranks 1.5 and 3
	a := []float64{1, 2}
	b := []float64{1, 3}
	assert.Equal(t, 4.5-3, MannWhitneyU(a, b))
	assert.Equal(t, 2.5, MannWhitneyU(b, a))
}

func TestMannWhitneyPValue_Edges(t *testing.T) {
	assert.Equal(t, 1.0, MannWhitneyPValue(3, 0, 4))
	assert.InDelta(t, 1.0, MannWhitneyPValue(8, 4, 4), 1e-12, "U at its mean is not significant")
}
