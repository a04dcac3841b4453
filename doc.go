// Package arena implements a region allocator: a bump-pointer arena that
// serves many same-lifetime allocations from a chain of fixed-size blocks.
//
// # Overview
//
// An arena hands out memory by advancing a cursor through its current
// block. When the block cannot hold a request, the arena moves to a new
// block sized max(request, block size). Blocks are never resized or moved,
// so a pointer stays valid until the arena is freed or rewound past it.
// There is no per-allocation free; memory is reclaimed in bulk.
//
// # Basic Usage
//
//	a, err := arena.New(arena.DefaultBlockSize)
//	if err != nil {
//	    return err
//	}
//	defer a.Free()
//
//	// Raw, aligned memory
//	p, err := a.Alloc(128, 16)
//
//	// Typed values
//	v, err := arena.Alloc[MyStruct](a)
//	s, err := arena.AllocSlice[int64](a, 100)
//
//	// Drop everything, keep the blocks
//	a.Reset()
//
// # Checkpoints
//
// Checkpoint captures the current position; Restore rewinds to it, keeping
// everything allocated before and discarding everything after, even when
// the discarded allocations span several blocks. Checkpoints nest:
//
//	outer := a.Checkpoint()
//	x, _ := a.Alloc(64, 8)
//	inner := a.Checkpoint()
//	y, _ := a.Alloc(64, 8)
//	_ = a.Restore(inner) // y is gone, x survives
//	_ = a.Restore(outer) // x is gone too
//
// Scope wraps the pattern for a function body.
//
// # Errors
//
// Invalid arguments and exhausted memory are reported as errors wrapping
// the sentinels in this package (ErrInvalidSize, ErrInvalidAlignment,
// ErrOutOfMemory, ...); test them with errors.Is. A failed allocation
// leaves the arena unchanged.
//
// # Block Sources
//
// Blocks come from a BlockSource. HeapSource (the default) uses the Go
// heap; MmapSource uses anonymous memory mappings outside the Go heap.
// WithMemoryLimit bounds the total capacity an arena may acquire.
//
// # Thread Safety
//
// Arena is not safe for concurrent use. Give each goroutine its own arena,
// or wrap a shared one in SafeArena. SafeArena.Scope holds the lock for
// the whole callback, which allocates through the *Arena it is handed.
//
// # Important Notes
//
//   - Using a pointer after Reset, Restore or Free rewound or released its
//     memory is undefined behavior; the arena does not detect it.
//   - Memory is not zeroed unless using Alloc[T] or AllocSliceZeroed.
//   - The garbage collector does not scan arena memory. Do not store the
//     only reference to a Go-heap object inside the arena.
package arena
