package hierpart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sixElements is the universe shared by the fixture trees.
var sixElements = []string{"a", "b", "c", "d", "e", "f"}

// leftRefined builds a tree over six elements whose left half is refined down
// to singletons:
//
//	{a,b,c,d,e,f}
//	├── {a,b,c}
//	│   ├── {a}
//	│   └── {b,c}
//	│       ├── {b}
//	│       └── {c}
//	└── {d,e,f}
func leftRefined(t *testing.T) *Partition[string] {
	t.Helper()

	p := New(sixElements)

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

// rightRefined builds the mirror fixture: same universe and top split, but the
// right half is the one refined down to singletons.
func rightRefined(t *testing.T) *Partition[string] {
	t.Helper()

	p := New(sixElements)

	_, err := p.AddChild(p.Root(), []string{"a", "b", "c"})
	require.NoError(t, err)

	right, err := p.AddChild(p.Root(), []string{"d", "e", "f"})
	require.NoError(t, err)

	_, err = p.AddChild(right, []string{"f"})
	require.NoError(t, err)

	de, err := p.AddChild(right, []string{"d", "e"})
	require.NoError(t, err)

	_, err = p.AddChild(de, []string{"d"})
	require.NoError(t, err)

	_, err = p.AddChild(de, []string{"e"})
	require.NoError(t, err)

	return p
}
