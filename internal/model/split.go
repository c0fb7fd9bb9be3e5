package model

import "math/rand"

// Split constants match the training contract: a 75/25 holdout with a fixed
// shuffle seed so repeated trainings on the same snapshot are reproducible.
const (
	testFraction = 0.25
	seed         = 42
)

// split partitions row indices into train and test sets. When both classes
// are present the split is stratified per class; otherwise it falls back to a
// plain shuffled split of the single class.
func split(y []int, fraction float64, seedVal int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seedVal))

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	for _, idx := range [][]int{byClass[0], byClass[1]} {
		if len(idx) == 0 {
			continue
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(float64(len(idx))*fraction + 0.5)
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	return train, test
}

// SplitCounts reports the train/test row counts the holdout split would
// produce for these labels.
func SplitCounts(y []int) (train, test int) {
	trainIdx, testIdx := split(y, testFraction, seed)
	return len(trainIdx), len(testIdx)
}
