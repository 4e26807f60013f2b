// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import "sort"

// TreeNode is one node of a regression tree. Nodes are stored flat; a node
// whose Left is 0 is a leaf (index 0 is always the root, never a child).
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

// Tree is a CART regression tree using squared-error splits.
type Tree struct {
	Nodes []TreeNode
}

// treeParams bounds tree growth.
type treeParams struct {
	maxDepth int
	minLeaf  int
}

// Predict walks the tree for x. Rows go left when x[feature] <= threshold.
func (t *Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left == 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// fitTree grows a tree over the rows in idx (duplicates allowed, as in a
// bootstrap sample).
func fitTree(X [][]float64, y []float64, idx []int, p treeParams) Tree {
	b := &treeBuilder{X: X, y: y, p: p}
	b.grow(append([]int(nil), idx...), 0)
	return Tree{Nodes: b.nodes}
}

type treeBuilder struct {
	X     [][]float64
	y     []float64
	p     treeParams
	nodes []TreeNode
}

// grow appends the subtree for idx and returns its node index.
func (b *treeBuilder) grow(idx []int, depth int) int {
	self := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{Value: b.mean(idx)})

	if depth >= b.p.maxDepth || len(idx) < 2*b.p.minLeaf || b.constant(idx) {
		return self
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return self
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[self].Feature = feature
	b.nodes[self].Threshold = threshold
	b.nodes[self].Left = l
	b.nodes[self].Right = r
	return self
}

func (b *treeBuilder) mean(idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += b.y[i]
	}
	return sum / float64(len(idx))
}

func (b *treeBuilder) constant(idx []int) bool {
	first := b.y[idx[0]]
	for _, i := range idx[1:] {
		if b.y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit finds the (feature, threshold) minimizing the summed squared
// error of the two children. Thresholds are midpoints between adjacent
// distinct values. Ties keep the lowest feature index.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	n := len(idx)
	var total, totalSq float64
	for _, i := range idx {
		total += b.y[i]
		totalSq += b.y[i] * b.y[i]
	}
	parentSSE := totalSq - total*total/float64(n)

	bestFeature, bestThreshold := -1, 0.0
	bestSSE := parentSSE
	sorted := make([]int, n)

	for f := 0; f < len(b.X[idx[0]]); f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool {
			return b.X[sorted[a]][f] < b.X[sorted[c]][f]
		})

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			yk := b.y[sorted[k]]
			leftSum += yk
			leftSq += yk * yk

			nl := k + 1
			nr := n - nl
			if nl < b.p.minLeaf || nr < b.p.minLeaf {
				continue
			}
			cur, next := b.X[sorted[k]][f], b.X[sorted[k+1]][f]
			if cur == next {
				continue
			}

			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := leftSq - leftSum*leftSum/float64(nl) + rightSq - rightSum*rightSum/float64(nr)
			if sse < bestSSE-1e-12 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}
