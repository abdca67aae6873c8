// Package statistics summarises tournament outcomes: per-matchup utility
// distributions and a leaderboard of strategy pairs.
package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes a sample of values.
type Summary struct {
	N        int     `json:"n" yaml:"n"`
	Mean     float64 `json:"mean" yaml:"mean"`
	StdDev   float64 `json:"std_dev" yaml:"std_dev"`
	StdError float64 `json:"std_error" yaml:"std_error"`
	CI95Low  float64 `json:"ci95_low" yaml:"ci95_low"`
	CI95High float64 `json:"ci95_high" yaml:"ci95_high"`
	Median   float64 `json:"median" yaml:"median"`
	P05      float64 `json:"p05" yaml:"p05"`
	P25      float64 `json:"p25" yaml:"p25"`
	P75      float64 `json:"p75" yaml:"p75"`
	P95      float64 `json:"p95" yaml:"p95"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
}

// Summarize computes the summary of values. The 95% confidence interval of
// the mean uses Student's t with n-1 degrees of freedom and collapses to the
// mean for fewer than two values. An empty sample yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:      n,
		Median: Percentile(sorted, 0.5),
		P05:    Percentile(sorted, 0.05),
		P25:    Percentile(sorted, 0.25),
		P75:    Percentile(sorted, 0.75),
		P95:    Percentile(sorted, 0.95),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}

	if n == 1 {
		s.Mean = values[0]
		s.CI95Low, s.CI95High = s.Mean, s.Mean
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	s.StdError = s.StdDev / math.Sqrt(float64(n))

	// Two-tailed 95% CI uses 97.5th percentile
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	margin := tDist.Quantile(0.975) * s.StdError
	s.CI95Low, s.CI95High = s.Mean-margin, s.Mean+margin
	return s
}

// Percentile returns the value at p (0.0 to 1.0) of an ascending sample,
// interpolating linearly between neighbours.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
