package model

import "sort"

// rocAUC computes the area under the ROC curve via the rank-sum statistic,
// with tied scores receiving their average rank. Requires both classes.
func rocAUC(y []int, proba []float64) float64 {
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return proba[idx[a]] < proba[idx[b]] })

	ranks := make([]float64, len(y))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && proba[idx[j]] == proba[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // average of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}

	var nPos, nNeg, posRankSum float64
	for i, label := range y {
		if label == 1 {
			nPos++
			posRankSum += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0
	}
	return (posRankSum - nPos*(nPos+1)/2) / (nPos * nNeg)
}

// prAUC computes average precision: the precision-weighted sum of recall
// increments over descending score order.
func prAUC(y []int, proba []float64) float64 {
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return proba[idx[a]] > proba[idx[b]] })

	var nPos float64
	for _, label := range y {
		if label == 1 {
			nPos++
		}
	}
	if nPos == 0 {
		return 0
	}

	var tp, fp, ap, prevRecall float64
	for _, i := range idx {
		if y[i] == 1 {
			tp++
		} else {
			fp++
		}
		recall := tp / nPos
		precision := tp / (tp + fp)
		ap += (recall - prevRecall) * precision
		prevRecall = recall
	}
	return ap
}

// f1Score computes F1 at the given probability threshold.
func f1Score(y []int, proba []float64, threshold float64) float64 {
	var tp, fp, fn float64
	for i, p := range proba {
		pred := 0
		if p >= threshold {
			pred = 1
		}
		switch {
		case pred == 1 && y[i] == 1:
			tp++
		case pred == 1 && y[i] == 0:
			fp++
		case pred == 0 && y[i] == 1:
			fn++
		}
	}
	den := 2*tp + fp + fn
	if den == 0 {
		return 0
	}
	return 2 * tp / den
}
