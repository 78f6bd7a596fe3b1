package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticAverage(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ArithmeticAverage(nil))
	assert.Equal(t, 2.0, ArithmeticAverage([]float64{1, 2, 3}))
	assert.Equal(t, -1.0, ArithmeticAverage([]float64{-2, 0}))
}

func TestSampleStandardDeviation(t *testing.T) {
	t.Parallel()
	assert.Zero(t, SampleStandardDeviation(nil))
	assert.Zero(t, SampleStandardDeviation([]float64{42}))
	assert.InDelta(t, math.Sqrt(2), SampleStandardDeviation([]float64{2, 4}), 1e-12)
}

func TestCalculateSharpeRatio(t *testing.T) {
	t.Parallel()
	// zero variance must yield zero, not a division failure
	assert.Zero(t, CalculateSharpeRatio([]float64{0.1, 0.1, 0.1}, 252))
	assert.Zero(t, CalculateSharpeRatio(nil, 252))

	// returns derived from a constant growth curve are only equal up to
	// float rounding, the residual dispersion still counts as zero
	constantGrowth := []float64{
		110.0/100.0 - 1,
		121.0/110.0 - 1,
		133.1/121.0 - 1,
	}
	assert.Zero(t, CalculateSharpeRatio(constantGrowth, 252))

	returns := []float64{0.01, -0.005, 0.02}
	expected := math.Sqrt(252) * ArithmeticAverage(returns) / SampleStandardDeviation(returns)
	assert.InDelta(t, expected, CalculateSharpeRatio(returns, 252), 1e-12)
}

func TestCalculateMaxDrawdown(t *testing.T) {
	t.Parallel()
	assert.Zero(t, CalculateMaxDrawdown(nil))
	assert.Zero(t, CalculateMaxDrawdown([]float64{1, 2, 3, 4}))
	assert.InDelta(t, 0.5, CalculateMaxDrawdown([]float64{100, 50, 75}), 1e-12)
	assert.InDelta(t, 0.25, CalculateMaxDrawdown([]float64{100, 110, 90, 82.5, 120}), 1e-12)

	dd := CalculateMaxDrawdown([]float64{100, 20, 310, 5})
	assert.GreaterOrEqual(t, dd, 0.0)
	assert.LessOrEqual(t, dd, 1.0)
}

func TestPercentageChange(t *testing.T) {
	t.Parallel()
	assert.Zero(t, PercentageChange(10, 0))
	assert.InDelta(t, 0.1, PercentageChange(110, 100), 1e-12)
	assert.InDelta(t, -0.5, PercentageChange(50, 100), 1e-12)
}
