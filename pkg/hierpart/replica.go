package hierpart

import "fmt"

// Replica returns a structurally identical tree in which every element has
// been substituted through mapping. The mapping must be total over the
// universe, injective, and of exactly the universe's cardinality; otherwise
// ErrMappingMismatch is returned. Node ids, edges and the validation mode are
// preserved. The substitution is fully deterministic given the mapping.
func Replica[E, F comparable](p *Partition[E], mapping map[E]F) (*Partition[F], error) {
	universe := p.AllElements()

	if len(mapping) != len(universe) {
		return nil, fmt.Errorf("%w: mapping has %d keys, universe has %d elements",
			ErrMappingMismatch, len(mapping), len(universe))
	}

	for _, e := range universe {
		if _, ok := mapping[e]; !ok {
			return nil, fmt.Errorf("%w: universe element missing from mapping", ErrMappingMismatch)
		}
	}

	images := make(map[F]struct{}, len(mapping))
	for _, f := range mapping {
		images[f] = struct{}{}
	}

	if len(images) != len(universe) {
		return nil, fmt.Errorf("%w: mapping is not injective", ErrMappingMismatch)
	}

	rp := &Partition[F]{
		elements: make([][]F, len(p.elements)),
		depth:    make([]int, len(p.depth)),
		parent:   make([]int, len(p.parent)),
		children: make([][]int, len(p.children)),
		checks:   p.checks,
	}

	copy(rp.depth, p.depth)
	copy(rp.parent, p.parent)

	for node, elems := range p.elements {
		mapped := make([]F, len(elems))
		for i, e := range elems {
			mapped[i] = mapping[e]
		}

		rp.elements[node] = mapped
	}

	for node, kids := range p.children {
		if len(kids) == 0 {
			continue
		}

		rp.children[node] = make([]int, len(kids))
		copy(rp.children[node], kids)
	}

	return rp, nil
}
