// Package hmi computes the hierarchical mutual information between two
// hierarchical partition trees: a recursive generalization of mutual
// information that compares nested partitions level by level over their
// shared element universe.
package hmi

import (
	"math"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
)

// Result holds the outcome of a normalized comparison.
type Result struct {
	// Score is Cross normalized by the geometric mean of SelfX and SelfY,
	// or 0 when that mean is not positive.
	Score float64
	// Cross is the hierarchical mutual information between the two trees.
	Cross float64
	// SelfX is the hierarchical self-information of the first tree.
	SelfX float64
	// SelfY is the hierarchical self-information of the second tree.
	SelfY float64
}

// Compare returns the hierarchical mutual information I(X;Y) between two
// trees. The trees are paired positionally starting at their roots and are
// only read; neither is mutated. Both trees are expected to be consistent
// hierarchical partitions; malformed trees yield mathematically meaningless
// (but well-defined) results.
func Compare[E comparable](x, y *hierpart.Partition[E]) float64 {
	return newEngine(x, y).sub(x.Root(), y.Root())
}

// Normalized returns the normalized hierarchical mutual information between
// two trees together with the raw cross- and self-information terms.
// For any tree with positive self-information, Normalized(X, X).Score is 1.
func Normalized[E comparable](x, y *hierpart.Partition[E]) Result {
	selfX := Compare(x, x)
	selfY := Compare(y, y)
	cross := Compare(x, y)

	res := Result{Cross: cross, SelfX: selfX, SelfY: selfY}

	prod := selfX * selfY
	if prod > 0 {
		res.Score = cross / math.Sqrt(prod)
	}

	return res
}

// engine holds the per-comparison precompute: a joint element index shared by
// both trees and one membership bitset per node, so every set intersection in
// the recursion is a word-wise popcount instead of a hash-set walk.
type engine struct {
	children [2][][]int
	sets     [2][]bitset
}

// treeX and treeY index the engine's per-tree slices.
const (
	treeX = 0
	treeY = 1
)

func newEngine[E comparable](x, y *hierpart.Partition[E]) *engine {
	// Index every element occurring anywhere in either tree, not only the
	// universes, so trees built without validation cannot index out of range.
	index := make(map[E]int)

	for _, p := range []*hierpart.Partition[E]{x, y} {
		for node := range p.NumNodes() {
			elems, _ := p.Elements(node)
			for _, e := range elems {
				if _, ok := index[e]; !ok {
					index[e] = len(index)
				}
			}
		}
	}

	e := &engine{}

	for side, p := range []*hierpart.Partition[E]{x, y} {
		n := p.NumNodes()
		e.children[side] = make([][]int, n)
		e.sets[side] = make([]bitset, n)

		for node := range n {
			elems, _ := p.Elements(node)

			set := newBitset(len(index))
			for _, el := range elems {
				set.set(index[el])
			}

			e.sets[side][node] = set

			kids, _ := p.Children(node)
			for child := range kids {
				e.children[side][node] = append(e.children[side][node], child)
			}
		}
	}

	return e
}

// sub computes I(X_x ; Y_y), the hierarchical mutual information between the
// subtree of X rooted at x and the subtree of Y rooted at y.
func (e *engine) sub(x, y int) float64 {
	shared := e.sets[treeX][x].and(e.sets[treeY][y])

	n := shared.count()
	if n == 0 || len(e.children[treeX][x]) == 0 || len(e.children[treeY][y]) == 0 {
		return 0
	}

	den := float64(n)

	var sx float64

	for _, cx := range e.children[treeX][x] {
		sx -= plogp(float64(e.sets[treeX][cx].andCount(shared)) / den)
	}

	var sy float64

	for _, cy := range e.children[treeY][y] {
		sy -= plogp(float64(e.sets[treeY][cy].andCount(shared)) / den)
	}

	var sxy, refined float64

	for _, cx := range e.children[treeX][x] {
		for _, cy := range e.children[treeY][y] {
			// The cross term uses the full child-child intersection, not the
			// intersection restricted to the shared set.
			q := float64(e.sets[treeX][cx].andCount(e.sets[treeY][cy])) / den

			sxy -= plogp(q)
			refined += q * e.sub(cx, cy)
		}
	}

	return sx + sy - sxy + refined
}

// plogp computes p·ln(p) with the exact convention 0·ln 0 = 0. Probabilities
// are not clamped; only p == 0 exactly short-circuits.
func plogp(p float64) float64 {
	if p == 0 {
		return 0
	}

	return p * math.Log(p)
}
