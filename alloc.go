package arena

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned
// for T.
//
// The garbage collector does not look inside arena blocks. T may contain
// pointers only if whatever they point to is kept alive elsewhere (for
// example, other memory in the same arena).
func Alloc[T any](a *Arena) (*T, error) {
	p, err := AllocUninitialized[T](a)
	if err != nil {
		return nil, err
	}
	var zero T
	*p = zero
	return p, nil
}

// AllocUninitialized returns a *T located in the arena without zeroing
// memory. This is faster than Alloc but the contents are whatever the block
// held before, including data from before a Reset or Restore.
func AllocUninitialized[T any](a *Arena) (*T, error) {
	var zero T
	p, err := a.Alloc(sizeOf[T](), int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	var zero T
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "alloc slice of %d elements", n)
	}
	elem := sizeOf[T]()
	if n > math.MaxInt/elem {
		return nil, errors.Wrapf(ErrOutOfMemory, "alloc slice of %d elements of %d bytes", n, elem)
	}
	p, err := a.Alloc(elem*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// AllocSliceZeroed allocates a slice of n zeroed elements of type T.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	s, err := AllocSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// AllocString copies s into the arena and returns the arena-backed copy.
// The empty string needs no memory and is returned as is.
func AllocString(a *Arena, s string) (string, error) {
	if len(s) == 0 {
		return "", a.check()
	}
	b, err := a.Alloc(len(s), 1)
	if err != nil {
		return "", err
	}
	buf := unsafe.Slice((*byte)(b), len(s))
	copy(buf, s)
	return unsafe.String(&buf[0], len(buf)), nil
}

// sizeOf returns the size of T, treating zero-sized types as one byte so
// every allocation gets a distinct address.
func sizeOf[T any]() int {
	var zero T
	if n := int(unsafe.Sizeof(zero)); n > 0 {
		return n
	}
	return 1
}
