package hierpart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootOnly(t *testing.T) {
	t.Parallel()

	p := New([]string{"a", "b"})

	assert.Equal(t, 0, p.Root())
	assert.Equal(t, 1, p.NumNodes())
	assert.Equal(t, 0, p.NumEdges())
	assert.Equal(t, 2, p.TotalNumElements())
	assert.Equal(t, []string{"a", "b"}, p.AllElements())
	assert.True(t, p.Checks())
}

func TestAddChildAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	p := leftRefined(t)

	assert.Equal(t, 7, p.NumNodes())
	assert.Equal(t, 6, p.NumEdges())

	for node := range 7 {
		elems, err := p.Elements(node)
		require.NoError(t, err)
		assert.NotEmpty(t, elems)
	}
}

func TestAddChildInvalidParent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parent int
	}{
		{name: "negative", parent: -1},
		{name: "beyond_arena", parent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New([]string{"a"})

			_, err := p.AddChild(tt.parent, []string{"a"})
			require.ErrorIs(t, err, ErrInvalidParent)
		})
	}
}

func TestAddChildSubsetViolation(t *testing.T) {
	t.Parallel()

	p := New([]string{"a", "b"})

	_, err := p.AddChild(p.Root(), []string{"a", "z"})
	require.ErrorIs(t, err, ErrSubsetViolation)

	// The failed call must not have grown the tree.
	assert.Equal(t, 1, p.NumNodes())
}

func TestUncheckedSkipsSubsetValidation(t *testing.T) {
	t.Parallel()

	p := NewUnchecked([]string{"a", "b"})
	assert.False(t, p.Checks())

	id, err := p.AddChild(p.Root(), []string{"z"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// Parent bounds are still enforced without validation.
	_, err = p.AddChild(99, []string{"a"})
	require.ErrorIs(t, err, ErrInvalidParent)
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	p := leftRefined(t)

	tests := []struct {
		name   string
		node   int
		elems  []string
		size   int
		depth  int
		parent int
		leaf   bool
	}{
		{name: "root", node: 0, elems: sixElements, size: 6, depth: 0, parent: NoParent, leaf: false},
		{name: "left_half", node: 1, elems: []string{"a", "b", "c"}, size: 3, depth: 1, parent: 0, leaf: false},
		{name: "right_half", node: 2, elems: []string{"d", "e", "f"}, size: 3, depth: 1, parent: 0, leaf: true},
		{name: "singleton_a", node: 3, elems: []string{"a"}, size: 1, depth: 2, parent: 1, leaf: true},
		{name: "pair_bc", node: 4, elems: []string{"b", "c"}, size: 2, depth: 2, parent: 1, leaf: false},
		{name: "deep_singleton", node: 6, elems: []string{"c"}, size: 1, depth: 3, parent: 4, leaf: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			elems, err := p.Elements(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.elems, elems)

			size, err := p.Size(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.size, size)

			depth, err := p.Depth(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.depth, depth)

			parent, err := p.Parent(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.parent, parent)

			leaf, err := p.Leaf(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.leaf, leaf)
		})
	}
}

func TestAccessorsUnknownNode(t *testing.T) {
	t.Parallel()

	p := New([]string{"a"})

	_, err := p.Elements(1)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.Size(-1)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.Depth(7)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.Parent(7)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.Children(7)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.BranchingFactor(7)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = p.Leaf(7)
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestChildrenInsertionOrder(t *testing.T) {
	t.Parallel()

	p := leftRefined(t)

	kids, err := p.Children(p.Root())
	require.NoError(t, err)

	var got []int
	for child := range kids {
		got = append(got, child)
	}

	assert.Equal(t, []int{1, 2}, got)

	// The sequence is re-iterable.
	got = got[:0]
	for child := range kids {
		got = append(got, child)
	}

	assert.Equal(t, []int{1, 2}, got)
}

func TestBranchingFactor(t *testing.T) {
	t.Parallel()

	p := leftRefined(t)

	root, err := p.BranchingFactor(0)
	require.NoError(t, err)
	assert.Equal(t, 2, root)

	leaf, err := p.BranchingFactor(3)
	require.NoError(t, err)
	assert.Equal(t, 0, leaf)
}

func TestDuplicateElementsAreKept(t *testing.T) {
	t.Parallel()

	p := New([]string{"a", "a", "b"})

	id, err := p.AddChild(p.Root(), []string{"a", "a"})
	require.NoError(t, err)

	size, err := p.Size(id)
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}
