// Package hierpart implements hierarchical partition trees: rooted trees whose
// nodes carry element subsets of a fixed universe, built incrementally and
// treated as immutable once constructed.
package hierpart

import (
	"errors"
	"fmt"
	"iter"
)

// Sentinel errors for construction and queries.
var (
	// ErrInvalidParent indicates AddChild referenced a node id outside the tree.
	ErrInvalidParent = errors.New("parent is not a node of this tree")
	// ErrSubsetViolation indicates a child's elements are not a subset of its parent's.
	ErrSubsetViolation = errors.New("child elements are not a subset of parent elements")
	// ErrUnknownNode indicates a query referenced a node id not present in the tree.
	ErrUnknownNode = errors.New("unknown node")
	// ErrMappingMismatch indicates a replica mapping is not a bijection over the universe.
	ErrMappingMismatch = errors.New("element mapping does not match the tree universe")
	// ErrInternalInconsistency indicates a structurally guaranteed invariant failed.
	// Trees reporting it are corrupted and must not be trusted.
	ErrInternalInconsistency = errors.New("internal tree inconsistency")
)

// NoParent is the parent id reported for the root node.
const NoParent = -1

// rootID is the id assigned to the root at construction.
const rootID = 0

// Partition is a hierarchical partition tree over elements of type E.
// Node ids are dense integers assigned in creation order starting at 0 (the
// root); ids are never reused and nodes are never removed, so the tree is an
// arena of parallel slices indexed by node id.
type Partition[E comparable] struct {
	elements [][]E
	depth    []int
	parent   []int
	children [][]int
	checks   bool
}

// New creates a partition whose root holds universe, with validation enabled:
// AddChild verifies the subset invariant on every call.
// The universe slice is stored as given, without copying or validation.
func New[E comparable](universe []E) *Partition[E] {
	return newPartition(universe, true)
}

// NewUnchecked creates a partition with validation disabled. AddChild accepts
// arbitrary child element sets without verifying the subset invariant, which
// is faster for trusted bulk construction. Malformed trees built this way
// propagate silently into downstream computations.
func NewUnchecked[E comparable](universe []E) *Partition[E] {
	return newPartition(universe, false)
}

func newPartition[E comparable](universe []E, checks bool) *Partition[E] {
	return &Partition[E]{
		elements: [][]E{universe},
		depth:    []int{0},
		parent:   []int{NoParent},
		children: [][]int{nil},
		checks:   checks,
	}
}

// Checks reports whether subset validation is enabled for this tree.
func (p *Partition[E]) Checks() bool {
	return p.checks
}

// AddChild creates a new node holding elems as a child of parent and returns
// its id. Ids are assigned in strictly increasing creation order. The parent
// id is always bounds-checked; the subset check against the parent's elements
// runs only when validation is enabled.
func (p *Partition[E]) AddChild(parent int, elems []E) (int, error) {
	if parent < 0 || parent >= len(p.elements) {
		return 0, fmt.Errorf("%w: id %d", ErrInvalidParent, parent)
	}

	if p.checks && !p.isSubsetOf(elems, parent) {
		return 0, fmt.Errorf("%w: parent %d", ErrSubsetViolation, parent)
	}

	child := len(p.elements)
	p.elements = append(p.elements, elems)
	p.depth = append(p.depth, p.depth[parent]+1)
	p.parent = append(p.parent, parent)
	p.children = append(p.children, nil)
	p.children[parent] = append(p.children[parent], child)

	return child, nil
}

// isSubsetOf reports whether every element of elems occurs in node's elements.
func (p *Partition[E]) isSubsetOf(elems []E, node int) bool {
	present := make(map[E]struct{}, len(p.elements[node]))
	for _, e := range p.elements[node] {
		present[e] = struct{}{}
	}

	for _, e := range elems {
		if _, ok := present[e]; !ok {
			return false
		}
	}

	return true
}

// validNode returns ErrUnknownNode when node is not an id of this tree.
func (p *Partition[E]) validNode(node int) error {
	if node < 0 || node >= len(p.elements) {
		return fmt.Errorf("%w: id %d", ErrUnknownNode, node)
	}

	return nil
}

// Root returns the root node id.
func (p *Partition[E]) Root() int {
	return rootID
}

// NumNodes returns the number of nodes in the tree.
func (p *Partition[E]) NumNodes() int {
	return len(p.elements)
}

// NumEdges returns the number of edges in the tree, always NumNodes-1.
func (p *Partition[E]) NumEdges() int {
	return len(p.elements) - 1
}

// AllElements returns the full element universe, i.e. the root's elements.
// The returned slice is the tree's backing storage and must not be mutated.
func (p *Partition[E]) AllElements() []E {
	return p.elements[rootID]
}

// TotalNumElements returns the cardinality of the element universe.
func (p *Partition[E]) TotalNumElements() int {
	return len(p.elements[rootID])
}

// Elements returns the elements held by node, in the order they were supplied.
// The returned slice is the tree's backing storage and must not be mutated.
func (p *Partition[E]) Elements(node int) ([]E, error) {
	if err := p.validNode(node); err != nil {
		return nil, err
	}

	return p.elements[node], nil
}

// Size returns the number of elements held by node.
func (p *Partition[E]) Size(node int) (int, error) {
	if err := p.validNode(node); err != nil {
		return 0, err
	}

	return len(p.elements[node]), nil
}

// Depth returns the depth of node; the root has depth 0.
func (p *Partition[E]) Depth(node int) (int, error) {
	if err := p.validNode(node); err != nil {
		return 0, err
	}

	return p.depth[node], nil
}

// Parent returns the parent id of node, or NoParent for the root.
func (p *Partition[E]) Parent(node int) (int, error) {
	if err := p.validNode(node); err != nil {
		return 0, err
	}

	return p.parent[node], nil
}

// Children returns a lazy, re-iterable sequence over the child ids of node,
// in insertion order.
func (p *Partition[E]) Children(node int) (iter.Seq[int], error) {
	if err := p.validNode(node); err != nil {
		return nil, err
	}

	kids := p.children[node]

	return func(yield func(int) bool) {
		for _, child := range kids {
			if !yield(child) {
				return
			}
		}
	}, nil
}

// BranchingFactor returns the number of children of node.
func (p *Partition[E]) BranchingFactor(node int) (int, error) {
	if err := p.validNode(node); err != nil {
		return 0, err
	}

	return len(p.children[node]), nil
}

// Leaf reports whether node has no children.
func (p *Partition[E]) Leaf(node int) (bool, error) {
	if err := p.validNode(node); err != nil {
		return false, err
	}

	return len(p.children[node]) == 0, nil
}
