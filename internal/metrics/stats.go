// Package metrics provides the small statistics helpers the reporter needs.
package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Interval is a confidence interval over a proportion.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ProportionCI95 returns the 95% confidence interval for a binomial
// proportion using the normal approximation (z=1.96), clamped to [0, 1].
// Returns the zero interval when total is 0.
func ProportionCI95(correct, total int) Interval {
	if total <= 0 {
		return Interval{}
	}
	p := float64(correct) / float64(total)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(total))
	return Interval{
		Lower: math.Max(0, p-margin),
		Upper: math.Min(1, p+margin),
	}
}
