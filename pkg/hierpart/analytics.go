package hierpart

import (
	"fmt"

	"github.com/Sumatoshi-tech/hierpart/pkg/alg/stats"
)

// MaxDepth returns the largest depth among all nodes.
func (p *Partition[E]) MaxDepth() int {
	return stats.Max(p.depth)
}

// DepthsBasicStats returns descriptive statistics over the depths of all
// leaves in the tree.
func (p *Partition[E]) DepthsBasicStats() stats.Basic {
	leaves := p.Leaves()

	depths := make([]float64, len(leaves))
	for i, leaf := range leaves {
		depths[i] = float64(p.depth[leaf])
	}

	return stats.Describe(depths)
}

// MaxSize returns the element count of the largest node. By the subset
// invariant this is always the root's size; any other outcome reports
// ErrInternalInconsistency.
func (p *Partition[E]) MaxSize() (int, error) {
	maxSize := 0
	for _, elems := range p.elements {
		if len(elems) > maxSize {
			maxSize = len(elems)
		}
	}

	if maxSize != len(p.elements[rootID]) {
		return 0, fmt.Errorf("%w: root is not the largest node (%d > %d)",
			ErrInternalInconsistency, maxSize, len(p.elements[rootID]))
	}

	return maxSize, nil
}

// MinSize returns the element count of the smallest node. A node with no
// elements reports ErrInternalInconsistency.
func (p *Partition[E]) MinSize() (int, error) {
	minSize := len(p.elements[rootID])
	for _, elems := range p.elements {
		if len(elems) < minSize {
			minSize = len(elems)
		}
	}

	if minSize <= 0 {
		return 0, fmt.Errorf("%w: node with empty element set", ErrInternalInconsistency)
	}

	return minSize, nil
}

// BranchingFactors returns the branching factor of every node, in ascending id
// order. When noLeaves is true, leaves are excluded.
func (p *Partition[E]) BranchingFactors(noLeaves bool) []int {
	var factors []int

	for _, kids := range p.children {
		if noLeaves && len(kids) == 0 {
			continue
		}

		factors = append(factors, len(kids))
	}

	return factors
}

// BranchingFactorsBasicStats returns descriptive statistics over the branching
// factors of the tree's nodes. When noLeaves is true, leaves are excluded.
func (p *Partition[E]) BranchingFactorsBasicStats(noLeaves bool) stats.Basic {
	factors := p.BranchingFactors(noLeaves)

	values := make([]float64, len(factors))
	for i, f := range factors {
		values[i] = float64(f)
	}

	return stats.Describe(values)
}

// Consistency reports whether, at every non-leaf node, the union of the
// children's element sets equals the node's own element set. Cost is linear
// in the total number of element occurrences.
func (p *Partition[E]) Consistency() bool {
	for node, kids := range p.children {
		if len(kids) == 0 {
			continue
		}

		union := make(map[E]struct{})

		for _, child := range kids {
			for _, e := range p.elements[child] {
				union[e] = struct{}{}
			}
		}

		own := make(map[E]struct{}, len(p.elements[node]))
		for _, e := range p.elements[node] {
			own[e] = struct{}{}
		}

		if len(union) != len(own) {
			return false
		}

		for e := range union {
			if _, ok := own[e]; !ok {
				return false
			}
		}
	}

	return true
}

// ChildrenAvgSize returns the average element count of node's children.
// When weighted, each child contributes with weight childSize/parentSize,
// which makes the result sum(childSize²)/parentSize for exact partitions.
// A leaf yields 0.
func (p *Partition[E]) ChildrenAvgSize(node int, weighted bool) (float64, error) {
	if err := p.validNode(node); err != nil {
		return 0, err
	}

	parentSize := float64(len(p.elements[node]))

	var sum, norm float64

	for _, child := range p.children[node] {
		childSize := float64(len(p.elements[child]))

		weight := 1.0
		if weighted {
			weight = childSize / parentSize
		}

		sum += weight * childSize
		norm += weight
	}

	if norm == 0 {
		return 0, nil
	}

	return sum / norm, nil
}

// Copy returns a structurally identical, fully independent tree: same node
// ids, same edges, same element sets, same validation mode.
func (p *Partition[E]) Copy() *Partition[E] {
	cp := &Partition[E]{
		elements: make([][]E, len(p.elements)),
		depth:    make([]int, len(p.depth)),
		parent:   make([]int, len(p.parent)),
		children: make([][]int, len(p.children)),
		checks:   p.checks,
	}

	copy(cp.depth, p.depth)
	copy(cp.parent, p.parent)

	for node, elems := range p.elements {
		cp.elements[node] = make([]E, len(elems))
		copy(cp.elements[node], elems)
	}

	for node, kids := range p.children {
		if len(kids) == 0 {
			continue
		}

		cp.children[node] = make([]int, len(kids))
		copy(cp.children[node], kids)
	}

	return cp
}
