package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallocOverflow(t *testing.T) {
	allocs := 0
	c := New(WithMemHooks(MemHooks{
		Alloc: func(n int) []byte {
			allocs++
			return make([]byte, n)
		},
		Realloc: func(buf []byte, n int) []byte { return buf },
		Free:    func([]byte) {},
	}))

	tests := []struct {
		name     string
		count    int
		elemSize int
	}{
		{"max times max", math.MaxInt, math.MaxInt},
		{"wraps to small", math.MaxInt/2 + 2, 2},
		{"negative count", -1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := c.Calloc(tt.count, tt.elemSize)
			assert.ErrorIs(t, err, ErrOverflow)
			assert.Nil(t, buf)
		})
	}
	assert.Zero(t, allocs, "overflow must be detected before the allocator runs")
}

func TestCallocZeroFills(t *testing.T) {
	dirty := make([]byte, 64)
	for i := range dirty {
		dirty[i] = 0xAA
	}
	c := New(WithMemHooks(MemHooks{
		Alloc:   func(n int) []byte { return dirty[:n] },
		Realloc: func(buf []byte, n int) []byte { return buf },
		Free:    func([]byte) {},
	}))

	buf, err := c.Calloc(8, 8)
	require.NoError(t, err)
	require.Len(t, buf, 64)
	for i, b := range buf {
		require.Zerof(t, b, "byte %d not zeroed", i)
	}
}

func TestFreeNilNoop(t *testing.T) {
	frees := 0
	c := New(WithMemHooks(MemHooks{
		Alloc:   func(n int) []byte { return make([]byte, n) },
		Realloc: func(buf []byte, n int) []byte { return buf },
		Free:    func([]byte) { frees++ },
	}))

	c.Free(nil)
	assert.Zero(t, frees)

	buf, err := c.Alloc(4)
	require.NoError(t, err)
	c.Free(buf)
	assert.Equal(t, 1, frees)
}

func TestReallocPreservesPrefix(t *testing.T) {
	c := New()
	buf, err := c.Alloc(4)
	require.NoError(t, err)
	copy(buf, "abcd")

	grown, err := c.Realloc(buf, 16)
	require.NoError(t, err)
	require.Len(t, grown, 16)
	assert.Equal(t, "abcd", string(grown[:4]))
}

func TestAllocRefused(t *testing.T) {
	c := New(WithMemHooks(MemHooks{
		Alloc:   func(int) []byte { return nil },
		Realloc: func([]byte, int) []byte { return nil },
		Free:    func([]byte) {},
	}))

	_, err := c.Alloc(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	_, err = c.Calloc(2, 2)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}
