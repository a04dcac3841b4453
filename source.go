package arena

import "github.com/pkg/errors"

// BlockSource supplies the memory backing arena blocks.
//
// Acquire must return a slice of exactly size bytes whose backing memory does
// not move for as long as the slice is held. Release is called exactly once
// for every slice returned by Acquire, when the owning arena is freed (or when
// a freshly acquired block turns out to be unusable).
type BlockSource interface {
	Acquire(size int) ([]byte, error)
	Release(buf []byte) error
}

// HeapSource allocates blocks on the Go heap. Released blocks are left to the
// garbage collector.
type HeapSource struct{}

// Acquire returns a zeroed slice of size bytes.
func (HeapSource) Acquire(size int) (buf []byte, err error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "heap source: acquire %d bytes", size)
	}
	// make panics (recoverably) for lengths the runtime cannot represent.
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrOutOfMemory, "heap source: acquire %d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

// Release is a no-op; the slice becomes garbage once the arena drops it.
func (HeapSource) Release([]byte) error { return nil }
