package arena

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// countingSource wraps HeapSource and records every Acquire and Release so
// tests can check that each block is released exactly once.
type countingSource struct {
	acquired map[*byte]int // base -> size
	released map[*byte]int // base -> release count
	order    []*byte       // release order
}

func newCountingSource() *countingSource {
	return &countingSource{
		acquired: make(map[*byte]int),
		released: make(map[*byte]int),
	}
}

func (s *countingSource) Acquire(size int) ([]byte, error) {
	buf, err := HeapSource{}.Acquire(size)
	if err != nil {
		return nil, err
	}
	s.acquired[unsafe.SliceData(buf)] = size
	return buf, nil
}

func (s *countingSource) Release(buf []byte) error {
	base := unsafe.SliceData(buf)
	s.released[base]++
	s.order = append(s.order, base)
	return nil
}

// requireBalanced asserts every acquired block was released exactly once.
func (s *countingSource) requireBalanced(t testing.TB) {
	t.Helper()
	require.Len(t, s.released, len(s.acquired), "every acquired block must be released")
	for base := range s.acquired {
		require.Equal(t, 1, s.released[base], "block %p released %d times", base, s.released[base])
	}
}

// offsetSource hands out blocks whose base address is misaligned by one
// byte relative to every alignment above 1.
type offsetSource struct {
	countingSource
}

func newOffsetSource() *offsetSource {
	return &offsetSource{countingSource: *newCountingSource()}
}

func (s *offsetSource) Acquire(size int) ([]byte, error) {
	raw := make([]byte, size+64)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	// First address that is 64-aligned, plus one.
	off := int((64-base%64)%64) + 1
	buf := raw[off : off+size : off+size]
	s.acquired[unsafe.SliceData(buf)] = size
	return buf, nil
}

var errSourceDown = errors.New("source down")

// failingSource succeeds for the first ok acquisitions and fails afterwards.
type failingSource struct {
	ok       int
	acquires int
}

func (s *failingSource) Acquire(size int) ([]byte, error) {
	s.acquires++
	if s.acquires > s.ok {
		return nil, errSourceDown
	}
	return make([]byte, size), nil
}

func (s *failingSource) Release([]byte) error { return nil }

// newTestArena creates an arena that fails the test on construction errors.
func newTestArena(t testing.TB, blockSize int, opts ...Option) *Arena {
	t.Helper()
	a, err := New(blockSize, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Free() })
	return a
}

// requireChainInvariants checks the structural invariants that must hold
// between operations.
func requireChainInvariants(t testing.TB, a *Arena) {
	t.Helper()
	if len(a.blocks) == 0 {
		require.Nil(t, a.current)
		require.Equal(t, -1, a.cur)
		require.Zero(t, a.inUse)
		return
	}
	require.Same(t, a.blocks[a.cur], a.current, "current must be blocks[cur]")
	sum, capacity := 0, 0
	for i, b := range a.blocks {
		require.GreaterOrEqual(t, b.index, 0)
		require.LessOrEqual(t, b.index, len(b.buf), "block %d cursor beyond capacity", i)
		if i > a.cur {
			require.Zero(t, b.index, "block %d after current must be empty", i)
		}
		sum += b.index
		capacity += len(b.buf)
	}
	require.Equal(t, sum, a.inUse, "inUse must equal the sum of cursors")
	require.Equal(t, capacity, a.capacity)
	require.LessOrEqual(t, a.inUse, a.peak)
}

func addr(p unsafe.Pointer) uintptr { return uintptr(p) }
