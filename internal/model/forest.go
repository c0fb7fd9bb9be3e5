package model

import (
	"math"
	"math/rand"
	"sort"
)

// forestModel is an ensemble of classification trees fitted on bootstrap
// samples with balanced-subsample class weighting. No feature scaling is
// applied; trees split on raw (imputed) values.
type forestModel struct {
	Trees []tree `json:"trees"`
}

type forestParams struct {
	Trees          int
	MaxDepth       int
	MinSamplesLeaf int
}

// tree is a flat node array; children reference node indices.
type tree struct {
	Nodes []treeNode `json:"nodes"`
}

type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Proba     float64 `json:"proba"`
}

func fitForest(x [][]float64, y []int, params forestParams) *forestModel {
	f := &forestModel{}
	if len(x) == 0 {
		return f
	}
	rng := rand.New(rand.NewSource(seed))
	nFeatures := int(math.Sqrt(float64(len(x[0]))))
	if nFeatures < 1 {
		nFeatures = 1
	}

	for t := 0; t < params.Trees; t++ {
		idx := make([]int, len(x))
		for i := range idx {
			idx[i] = rng.Intn(len(x))
		}

		// Balanced-subsample weighting: weights derive from the class
		// frequencies of this bootstrap sample, not the full set.
		var nPos int
		for _, i := range idx {
			nPos += y[i]
		}
		nNeg := len(idx) - nPos
		wPos, wNeg := 1.0, 1.0
		if nPos > 0 && nNeg > 0 {
			wPos = float64(len(idx)) / (2 * float64(nPos))
			wNeg = float64(len(idx)) / (2 * float64(nNeg))
		}

		b := &treeBuilder{
			x: x, y: y,
			wPos: wPos, wNeg: wNeg,
			maxDepth:       params.MaxDepth,
			minSamplesLeaf: params.MinSamplesLeaf,
			nFeatures:      nFeatures,
			rng:            rng,
		}
		b.build(idx, 0)
		f.Trees = append(f.Trees, tree{Nodes: b.nodes})
	}
	return f
}

func (f *forestModel) predictProba(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predictProba(x)
	}
	return sum / float64(len(f.Trees))
}

func (t *tree) predictProba(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Proba
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeBuilder struct {
	x              [][]float64
	y              []int
	wPos, wNeg     float64
	maxDepth       int
	minSamplesLeaf int
	nFeatures      int
	rng            *rand.Rand
	nodes          []treeNode
}

func (b *treeBuilder) weight(i int) float64 {
	if b.y[i] == 1 {
		return b.wPos
	}
	return b.wNeg
}

// leafProba is the weighted positive fraction of the samples at a leaf.
func (b *treeBuilder) leafProba(idx []int) float64 {
	var pos, total float64
	for _, i := range idx {
		w := b.weight(i)
		total += w
		if b.y[i] == 1 {
			pos += w
		}
	}
	if total == 0 {
		return 0
	}
	return pos / total
}

// build grows a subtree over idx and returns its node index.
func (b *treeBuilder) build(idx []int, depth int) int {
	node := treeNode{Leaf: true, Proba: b.leafProba(idx)}
	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, node)

	if depth >= b.maxDepth || len(idx) < 2*b.minSamplesLeaf || pure(b.y, idx) {
		return nodeIdx
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return nodeIdx
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minSamplesLeaf || len(right) < b.minSamplesLeaf {
		return nodeIdx
	}

	leftIdx := b.build(left, depth+1)
	rightIdx := b.build(right, depth+1)

	b.nodes[nodeIdx].Leaf = false
	b.nodes[nodeIdx].Feature = feature
	b.nodes[nodeIdx].Threshold = threshold
	b.nodes[nodeIdx].Left = leftIdx
	b.nodes[nodeIdx].Right = rightIdx
	return nodeIdx
}

func pure(y []int, idx []int) bool {
	first := y[idx[0]]
	for _, i := range idx[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit searches a random feature subset for the split minimizing
// weighted Gini impurity, trying midpoints between consecutive distinct
// values.
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	nCols := len(b.x[idx[0]])
	cols := b.rng.Perm(nCols)[:b.nFeatures]

	bestGini := math.Inf(1)
	vals := make([]float64, 0, len(idx))

	for _, col := range cols {
		vals = vals[:0]
		for _, i := range idx {
			vals = append(vals, b.x[i][col])
		}
		sort.Float64s(vals)

		for v := 1; v < len(vals); v++ {
			if vals[v] == vals[v-1] {
				continue
			}
			th := (vals[v] + vals[v-1]) / 2
			g := b.splitGini(idx, col, th)
			if g < bestGini {
				bestGini = g
				feature = col
				threshold = th
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) splitGini(idx []int, col int, threshold float64) float64 {
	var lPos, lTot, rPos, rTot float64
	for _, i := range idx {
		w := b.weight(i)
		if b.x[i][col] <= threshold {
			lTot += w
			if b.y[i] == 1 {
				lPos += w
			}
		} else {
			rTot += w
			if b.y[i] == 1 {
				rPos += w
			}
		}
	}

	gini := func(pos, tot float64) float64 {
		if tot == 0 {
			return 0
		}
		p := pos / tot
		return 2 * p * (1 - p)
	}
	total := lTot + rTot
	if total == 0 {
		return math.Inf(1)
	}
	return (lTot*gini(lPos, lTot) + rTot*gini(rPos, rTot)) / total
}
