package persist

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
)

// sixElementTree builds the fixture used across the codec tests:
//
//	{a,b,c,d,e,f}
//	├── {a,b,c}
//	│   ├── {a}
//	│   └── {b,c}
//	│       ├── {b}
//	│       └── {c}
//	└── {d,e,f}
func sixElementTree(t *testing.T) *hierpart.Partition[string] {
	t.Helper()

	p := hierpart.New([]string{"a", "b", "c", "d", "e", "f"})

	left, err := p.AddChild(p.Root(), []string{"a", "b", "c"})
	require.NoError(t, err)

	_, err = p.AddChild(p.Root(), []string{"d", "e", "f"})
	require.NoError(t, err)

	_, err = p.AddChild(left, []string{"a"})
	require.NoError(t, err)

	bc, err := p.AddChild(left, []string{"b", "c"})
	require.NoError(t, err)

	_, err = p.AddChild(bc, []string{"b"})
	require.NoError(t, err)

	_, err = p.AddChild(bc, []string{"c"})
	require.NoError(t, err)

	return p
}

// rootOnly builds a tree holding only its root.
func rootOnly(t *testing.T, elems ...string) *hierpart.Partition[string] {
	t.Helper()

	return hierpart.New(elems)
}

// nodeSets returns a canonical form of the tree's node element sets: each
// node's elements sorted, the list of sets sorted. Two trees with equal
// nodeSets describe the same nested partition regardless of node ids and
// sibling order.
func nodeSets(t *testing.T, p *hierpart.Partition[string]) []string {
	t.Helper()

	sets := make([]string, 0, p.NumNodes())

	for node := range p.NumNodes() {
		elems, err := p.Elements(node)
		require.NoError(t, err)

		sorted := make([]string, len(elems))
		copy(sorted, elems)
		sort.Strings(sorted)

		key := ""
		for _, e := range sorted {
			key += e + ","
		}

		sets = append(sets, key)
	}

	sort.Strings(sets)

	return sets
}
