package math

import (
	"math"
)

// ArithmeticAverage returns the mean of values, zero for an empty set
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for x := range values {
		sum += values[x]
	}
	return sum / float64(len(values))
}

// SampleStandardDeviation measures the dispersion of a dataset relative
// to its mean using Bessel's correction. Fewer than two values have no
// dispersion and return zero
func SampleStandardDeviation(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(values)
	var combined float64
	for i := range values {
		combined += math.Pow(values[i]-mean, 2)
	}
	return math.Sqrt(combined / float64(len(values)-1))
}

// relativeDispersionEpsilon separates genuine return dispersion from
// the ~1e-17 residue float rounding leaves on a constant return series
const relativeDispersionEpsilon = 1e-12

// CalculateSharpeRatio annualises the mean of the period returns over
// their sample standard deviation. Zero dispersion returns zero rather
// than propagating a division failure, and a deviation that is pure
// float rounding noise against the mean counts as zero dispersion
func CalculateSharpeRatio(periodReturns []float64, periodsPerYear float64) float64 {
	mean := ArithmeticAverage(periodReturns)
	stdDev := SampleStandardDeviation(periodReturns)
	if stdDev == 0 || stdDev <= math.Abs(mean)*relativeDispersionEpsilon {
		return 0
	}
	return math.Sqrt(periodsPerYear) * mean / stdDev
}

// CalculateMaxDrawdown returns the largest fractional decline of the
// series from its running maximum. It is zero for a non-decreasing
// series and guarded against a zero running maximum
func CalculateMaxDrawdown(values []float64) float64 {
	var runningMax, maxDrawdown float64
	for i := range values {
		if values[i] > runningMax {
			runningMax = values[i]
		}
		if runningMax == 0 {
			continue
		}
		drawdown := (runningMax - values[i]) / runningMax
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// PercentageChange returns the fractional change from previous to current,
// zero when there is no prior value to compare against
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return current/previous - 1
}
