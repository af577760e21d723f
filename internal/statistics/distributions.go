package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Abramowitz and Stegun 7.1.26 coefficients
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// erf is the Abramowitz-Stegun rational approximation of the error
// function (max absolute error about 1.5e-7). Comparison p-values depend on
// this exact approximation, so math.Erf is not a drop-in replacement.
func erf(x float64) float64 {
	sign := 1.0
	if !(x >= 0) {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)

	return sign * y
}

// NormalCDF approximates the standard normal CDF through erf
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + erf(x/math.Sqrt2))
}

// welchDegreesOfFreedom is the Welch-Satterthwaite approximation. It is
// reported alongside a comparison but never used for its p-value.
func welchDegreesOfFreedom(varA float64, nA int, varB float64, nB int) float64 {
	a := varA / float64(nA)
	b := varB / float64(nB)
	return math.Pow(a+b, 2) / (math.Pow(a, 2)/float64(nA-1) + math.Pow(b, 2)/float64(nB-1))
}

// rankSum returns the sum of ranks of groupA within the pooled sample,
// assigning tied values their average rank.
func rankSum(groupA, groupB []float64) float64 {
	type obs struct {
		value float64
		fromA bool
	}
	pooled := make([]obs, 0, len(groupA)+len(groupB))
	for _, v := range groupA {
		pooled = append(pooled, obs{value: v, fromA: true})
	}
	for _, v := range groupB {
		pooled = append(pooled, obs{value: v})
	}
	sort.SliceStable(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	sum := 0.0
	for i := 0; i < len(pooled); {
		j := i
		for j+1 < len(pooled) && pooled[j+1].value == pooled[i].value {
			j++
		}
		// ranks are 1-based; ties share the mean of positions i..j
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if pooled[k].fromA {
				sum += avgRank
			}
		}
		i = j + 1
	}
	return sum
}

// MannWhitneyU returns the U statistic of groupA against groupB
func MannWhitneyU(groupA, groupB []float64) float64 {
	n1 := float64(len(groupA))
	return rankSum(groupA, groupB) - n1*(n1+1)/2
}

// MannWhitneyPValue computes the two-tailed p-value of a U statistic using
// the large-sample normal approximation.
func MannWhitneyPValue(uStatistic float64, n1, n2 int) float64 {
	if n1 <= 0 || n2 <= 0 {
		return 1.0
	}

	meanU := float64(n1*n2) / 2.0
	stdU := math.Sqrt(float64(n1*n2*(n1+n2+1)) / 12.0)
	if stdU == 0 {
		return 1.0
	}

	z := (uStatistic - meanU) / stdU
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
}
