package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestROCAUC_PerfectRanking(t *testing.T) {
	y := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	assert.InDelta(t, 1.0, rocAUC(y, scores), 1e-9)
}

func TestROCAUC_InvertedRanking(t *testing.T) {
	y := []int{1, 1, 0, 0}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	assert.InDelta(t, 0.0, rocAUC(y, scores), 1e-9)
}

func TestROCAUC_Ties(t *testing.T) {
	// Every score identical: chance-level discrimination.
	y := []int{0, 1, 0, 1}
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	assert.InDelta(t, 0.5, rocAUC(y, scores), 1e-9)
}

func TestPRAUC_PerfectRanking(t *testing.T) {
	y := []int{0, 1, 0, 1}
	scores := []float64{0.2, 0.9, 0.1, 0.8}
	assert.InDelta(t, 1.0, prAUC(y, scores), 1e-9)
}

func TestPRAUC_WorstRanking(t *testing.T) {
	// Single positive ranked last of four: precision 1/4 at its recall step.
	y := []int{1, 0, 0, 0}
	scores := []float64{0.1, 0.9, 0.8, 0.7}
	assert.InDelta(t, 0.25, prAUC(y, scores), 1e-9)
}

func TestF1Score_HandComputed(t *testing.T) {
	y := []int{1, 1, 1, 0, 0}
	scores := []float64{0.9, 0.8, 0.2, 0.7, 0.1}
	// TP=2 FP=1 FN=1 at the 0.5 cut: F1 = 4/6.
	assert.InDelta(t, 2.0/3.0, f1Score(y, scores, 0.5), 1e-9)
}

func TestF1Score_NoPredictedPositives(t *testing.T) {
	y := []int{1, 0}
	scores := []float64{0.1, 0.2}
	assert.Equal(t, 0.0, f1Score(y, scores, 0.5))
}

func TestSplit_PreservesClassBalance(t *testing.T) {
	n := 40
	y := make([]int, n)
	for i := range y {
		if i%4 == 0 {
			y[i] = 1
		}
	}
	trainIdx, testIdx := split(y, testFraction, seed)

	assert.Len(t, trainIdx, 30)
	assert.Len(t, testIdx, 10)

	testPos := 0
	for _, i := range testIdx {
		testPos += y[i]
	}
	// 10 positives overall, a quarter held out.
	assert.Equal(t, 2, testPos, "test split should hold 25%% of the minority class")

	seen := make(map[int]bool, n)
	for _, i := range append(append([]int{}, trainIdx...), testIdx...) {
		assert.False(t, seen[i], "index %d assigned twice", i)
		seen[i] = true
	}
	assert.Len(t, seen, n)
}

func TestSplit_Deterministic(t *testing.T) {
	y := []int{0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0}
	trainA, testA := split(y, testFraction, seed)
	trainB, testB := split(y, testFraction, seed)
	assert.Equal(t, trainA, trainB)
	assert.Equal(t, testA, testB)
}
