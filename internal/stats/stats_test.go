package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestSampleStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{5}))
	// Sample std of {2, 4} is sqrt(2).
	assert.InDelta(t, math.Sqrt2, SampleStdDev([]float64{2, 4}), 1e-12)
}

func TestMedian(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	// Even count interpolates the midpoint.
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
}

func TestRatio_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
}

func TestClip(t *testing.T) {
	assert.Equal(t, 1.2, Clip(3.4, 0, 1.2))
	assert.Equal(t, 0.0, Clip(-1, 0, 1.2))
	assert.Equal(t, 0.7, Clip(0.7, 0, 1.2))
}

func TestMeanSkipNaN(t *testing.T) {
	nan := math.NaN()
	assert.InDelta(t, 2.0, MeanSkipNaN([]float64{1, nan, 3}), 1e-12)
	assert.True(t, math.IsNaN(MeanSkipNaN([]float64{nan, nan})))
}

func TestMedianSkipNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 2.0, MedianSkipNaN([]float64{nan, 1, 3, 2}))
	assert.True(t, math.IsNaN(MedianSkipNaN([]float64{nan})))
}

func TestZeroNaN(t *testing.T) {
	assert.Equal(t, 0.0, ZeroNaN(math.NaN()))
	assert.Equal(t, 1.5, ZeroNaN(1.5))
}
