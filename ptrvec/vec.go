// Package ptrvec provides Vec, a growable array of tagged values.
//
// Vec is the usual home for pointers handed out by an arena: it stores
// them but never owns or frees what they point to. Destroying a Vec leaves
// the pointees alone, and rewinding the arena that produced stored pointers
// invalidates them without the Vec noticing.
//
// Vec is not safe for concurrent use.
package ptrvec

import "github.com/pkg/errors"

var (
	// ErrInvalidCapacity indicates an initial capacity <= 0.
	ErrInvalidCapacity = errors.New("ptrvec: initial capacity must be positive")

	// ErrOutOfRange indicates an index outside [0, Len()).
	ErrOutOfRange = errors.New("ptrvec: index out of range")

	// ErrDestroyed is returned by operations on a destroyed or nil Vec.
	ErrDestroyed = errors.New("ptrvec: use after Destroy")
)

// Vec is a growable array of Values. Its backing storage doubles when full.
type Vec struct {
	data []Value // len(data) is the capacity
	n    int
}

// New creates an empty Vec with room for initialCapacity values.
func New(initialCapacity int) (*Vec, error) {
	if initialCapacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "new vec with capacity %d", initialCapacity)
	}
	return &Vec{data: make([]Value, initialCapacity)}, nil
}

// Append adds x at the end, doubling capacity first if the Vec is full.
func (v *Vec) Append(x Value) error {
	if v == nil || v.data == nil {
		return ErrDestroyed
	}
	if v.n == len(v.data) {
		grown := make([]Value, 2*len(v.data))
		copy(grown, v.data)
		v.data = grown
	}
	v.data[v.n] = x
	v.n++
	return nil
}

// Get returns the value at i.
func (v *Vec) Get(i int) (Value, error) {
	if err := v.check(i); err != nil {
		return Value{}, err
	}
	return v.data[i], nil
}

// Put replaces the value at i. It cannot extend the Vec; use Append.
func (v *Vec) Put(i int, x Value) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.data[i] = x
	return nil
}

// Remove deletes the value at i, shifting later values down by one.
func (v *Vec) Remove(i int) error {
	if err := v.check(i); err != nil {
		return err
	}
	copy(v.data[i:v.n], v.data[i+1:v.n])
	v.n--
	v.data[v.n] = Value{}
	return nil
}

// Len returns the number of stored values. A destroyed Vec has length 0.
func (v *Vec) Len() int {
	if v == nil {
		return 0
	}
	return v.n
}

// Cap returns the number of values the Vec can hold before growing.
func (v *Vec) Cap() int {
	if v == nil {
		return 0
	}
	return len(v.data)
}

// Destroy drops the backing storage. Stored pointers are not followed.
// Destroying twice is harmless.
func (v *Vec) Destroy() {
	if v == nil {
		return
	}
	v.data = nil
	v.n = 0
}

func (v *Vec) check(i int) error {
	if v == nil || v.data == nil {
		return ErrDestroyed
	}
	if i < 0 || i >= v.n {
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, v.n)
	}
	return nil
}
