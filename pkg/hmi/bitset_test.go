package hmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsetSetAndCount(t *testing.T) {
	t.Parallel()

	b := newBitset(130)
	assert.Equal(t, 0, b.count())

	b.set(0)
	b.set(63)
	b.set(64)
	b.set(129)

	assert.Equal(t, 4, b.count())
}

func TestBitsetAnd(t *testing.T) {
	t.Parallel()

	a := newBitset(128)
	a.set(1)
	a.set(70)
	a.set(100)

	b := newBitset(128)
	b.set(70)
	b.set(100)
	b.set(127)

	got := a.and(b)
	assert.Equal(t, 2, got.count())
	assert.Equal(t, 2, a.andCount(b))

	// The inputs stay untouched.
	assert.Equal(t, 3, a.count())
	assert.Equal(t, 3, b.count())
}

func TestBitsetAndCountDisjoint(t *testing.T) {
	t.Parallel()

	a := newBitset(64)
	a.set(3)

	b := newBitset(64)
	b.set(4)

	assert.Equal(t, 0, a.andCount(b))
}
