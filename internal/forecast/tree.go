// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// node is a regression tree node stored in a flat slice. Leaves have
// feature == -1.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
}

func (n *node) isLeaf() bool {
	return n.feature < 0
}

// regressionTree is one boosting stage. Leaf values already include the
// learning rate.
type regressionTree struct {
	nodes []node
}

func (t *regressionTree) predict(x []float64) float64 {
	i := 0
	for {
		n := &t.nodes[i]
		if n.isLeaf() {
			return n.value
		}
		if x[n.feature] < n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

// depth returns the number of split levels.
func (t *regressionTree) depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := &t.nodes[i]
		if n.isLeaf() {
			return 0
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(0)
}

// treeBuilder grows one tree by exact greedy search on squared error.
// Every row has unit hessian, so hessian sums are row counts.
type treeBuilder struct {
	x        *mat.Dense
	residual []float64
	features []int
	params   Params
	tree     regressionTree
}

type split struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

func (b *treeBuilder) residualSum(rows []int) float64 {
	var g float64
	for _, r := range rows {
		g += b.residual[r]
	}
	return g
}

func (b *treeBuilder) score(g float64, n int) float64 {
	return g * g / (float64(n) + b.params.Lambda)
}

// grow adds the subtree for rows and returns its node index.
func (b *treeBuilder) grow(rows []int, depth int) int {
	g := b.residualSum(rows)
	idx := len(b.tree.nodes)
	b.tree.nodes = append(b.tree.nodes, node{
		feature: -1,
		value:   b.params.LearningRate * g / (float64(len(rows)) + b.params.Lambda),
	})

	if depth >= b.params.MaxDepth || float64(len(rows)) < 2*b.params.MinChildWeight {
		return idx
	}

	best, ok := b.bestSplit(rows, g)
	if !ok {
		return idx
	}

	left := b.grow(best.left, depth+1)
	right := b.grow(best.right, depth+1)
	b.tree.nodes[idx] = node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      left,
		right:     right,
	}
	return idx
}

// bestSplit scans every sampled feature for the threshold with the highest
// positive gain. Ties keep the first candidate found.
func (b *treeBuilder) bestSplit(rows []int, g float64) (split, bool) {
	n := len(rows)
	parent := b.score(g, n)
	sorted := make([]int, n)
	values := make([]float64, n)

	var best split
	found := false

	for _, f := range b.features {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x.At(sorted[i], f) < b.x.At(sorted[j], f)
		})
		for i, r := range sorted {
			values[i] = b.x.At(r, f)
		}

		var gl float64
		for i := 1; i < n; i++ {
			gl += b.residual[sorted[i-1]]
			if values[i-1] == values[i] {
				continue
			}
			nl, nr := i, n-i
			if float64(nl) < b.params.MinChildWeight || float64(nr) < b.params.MinChildWeight {
				continue
			}
			gain := 0.5 * (b.score(gl, nl) + b.score(g-gl, nr) - parent)
			if gain <= 0 || (found && gain <= best.gain) {
				continue
			}
			found = true
			best = split{
				feature:   f,
				threshold: (values[i-1] + values[i]) / 2,
				gain:      gain,
				left:      append([]int(nil), sorted[:i]...),
				right:     append([]int(nil), sorted[i:]...),
			}
		}
	}
	return best, found
}
