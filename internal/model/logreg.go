package model

// logregModel is a linear logistic classifier fitted by full-batch gradient
// descent on standardized features with class-balanced sample weighting.
type logregModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

type logregParams struct {
	LearningRate float64
	Epochs       int
}

func fitLogReg(x [][]float64, y []int, params logregParams) *logregModel {
	if len(x) == 0 {
		return &logregModel{}
	}
	nRows := len(x)
	nCols := len(x[0])

	// Balanced class weights: n / (2 * n_c). A single-class set degrades to
	// uniform weighting.
	var nPos int
	for _, label := range y {
		nPos += label
	}
	nNeg := nRows - nPos
	wPos, wNeg := 1.0, 1.0
	if nPos > 0 && nNeg > 0 {
		wPos = float64(nRows) / (2 * float64(nPos))
		wNeg = float64(nRows) / (2 * float64(nNeg))
	}

	m := &logregModel{Weights: make([]float64, nCols)}
	gradW := make([]float64, nCols)
	for epoch := 0; epoch < params.Epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		var gradB float64

		for i, row := range x {
			p := m.predictProba(row)
			w := wNeg
			if y[i] == 1 {
				w = wPos
			}
			err := w * (p - float64(y[i]))
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}

		step := params.LearningRate / float64(nRows)
		for j := range m.Weights {
			m.Weights[j] -= step * gradW[j]
		}
		m.Bias -= step * gradB
	}
	return m
}

func (m *logregModel) predictProba(x []float64) float64 {
	z := m.Bias
	for j, w := range m.Weights {
		if j < len(x) {
			z += w * x[j]
		}
	}
	return sigmoid(z)
}
