package hierpart

import (
	"iter"
	"sort"
)

// Edge is a directed parent→child link.
type Edge struct {
	Parent int
	Child  int
}

// Nodes returns all node ids in ascending id order, which is also creation
// order. This is the tree's stable enumeration order; no other operation
// depends on it.
func (p *Partition[E]) Nodes() []int {
	nodes := make([]int, len(p.elements))
	for i := range nodes {
		nodes[i] = i
	}

	return nodes
}

// Edges returns all (parent, child) pairs, grouped by ascending parent id with
// children in insertion order.
func (p *Partition[E]) Edges() []Edge {
	edges := make([]Edge, 0, p.NumEdges())

	for node, kids := range p.children {
		for _, child := range kids {
			edges = append(edges, Edge{Parent: node, Child: child})
		}
	}

	return edges
}

// Leaves returns the ids of all nodes with no children, in ascending id order.
func (p *Partition[E]) Leaves() []int {
	var leaves []int

	for node, kids := range p.children {
		if len(kids) == 0 {
			leaves = append(leaves, node)
		}
	}

	return leaves
}

// NodesAtDepth returns the ids of all nodes at the given depth, in ascending
// id order. The result may be empty.
func (p *Partition[E]) NodesAtDepth(depth int) []int {
	var nodes []int

	for node, d := range p.depth {
		if d == depth {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

// BFS returns a sequence over node ids in breadth-first order from the root,
// visiting each level's children in insertion order.
func (p *Partition[E]) BFS() iter.Seq[int] {
	return func(yield func(int) bool) {
		if !yield(rootID) {
			return
		}

		wave := []int{rootID}
		for len(wave) > 0 {
			var next []int

			for _, node := range wave {
				for _, child := range p.children[node] {
					if !yield(child) {
						return
					}

					next = append(next, child)
				}
			}

			wave = next
		}
	}
}

// DFS returns a sequence over node ids in depth-first order from the root.
// At each node the children are pushed onto an explicit stack in insertion
// order and then popped, so siblings are visited in reverse insertion order.
// Callers depending on a specific layout rely on exactly this ordering.
func (p *Partition[E]) DFS() iter.Seq[int] {
	return func(yield func(int) bool) {
		stack := []int{rootID}

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(node) {
				return
			}

			stack = append(stack, p.children[node]...)
		}
	}
}

// NodesBySize returns all node ids sorted by descending element count, with
// ties broken by ascending node id.
func (p *Partition[E]) NodesBySize() []int {
	nodes := p.Nodes()

	sort.SliceStable(nodes, func(i, j int) bool {
		return len(p.elements[nodes[i]]) > len(p.elements[nodes[j]])
	})

	return nodes
}
