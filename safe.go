package arena

import (
	"sync"
	"unsafe"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
//
// Checkpoints are shared state: a Restore by one goroutine discards what
// every other goroutine allocated since the checkpoint.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena. Arguments are as for New.
func NewSafeArena(blockSize int, opts ...Option) (*SafeArena, error) {
	a, err := New(blockSize, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// Alloc thread-safely allocates size bytes aligned to alignment.
func (s *SafeArena) Alloc(size, alignment int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size, alignment)
}

// AllocBytes thread-safely allocates n pointer-aligned bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely ensures the current block has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.EnsureCapacity(n)
}

// Reset thread-safely resets allocation offsets to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Checkpoint thread-safely captures the current allocation position.
func (s *SafeArena) Checkpoint() Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Checkpoint()
}

// Restore thread-safely rewinds the arena to cp.
func (s *SafeArena) Restore(cp Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Restore(cp)
}

// Scope runs fn with the lock held, between a checkpoint and its restore,
// so everything fn allocates is discarded when it returns. fn must allocate
// through the *Arena it is given; calling back into s deadlocks.
func (s *SafeArena) Scope(fn func(a *Arena) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Scope(func() error { return fn(s.a) })
}

// Free thread-safely releases all blocks and makes the arena unusable.
func (s *SafeArena) Free() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Free()
}

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside the arena.
func SafeAlloc[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocUninitialized thread-safely returns a *T without zeroing memory.
func SafeAllocUninitialized[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocUninitialized[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocSliceZeroed thread-safely allocates a slice of n elements with zeroed memory.
func SafeAllocSliceZeroed[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSliceZeroed[T](s.a, n)
}

// SafeAllocString thread-safely copies str into the arena.
func SafeAllocString(s *SafeArena, str string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocString(s.a, str)
}
