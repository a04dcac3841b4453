package arena

import "github.com/pkg/errors"

var (
	// ErrNilArena is returned when an operation is invoked on a nil *Arena.
	ErrNilArena = errors.New("arena: nil arena")

	// ErrArenaFreed is returned by operations on an arena after Free.
	ErrArenaFreed = errors.New("arena: use after Free")

	// ErrInvalidBlockSize indicates a default block size <= 0.
	ErrInvalidBlockSize = errors.New("arena: block size must be positive")

	// ErrInvalidSize indicates an allocation request of size <= 0.
	ErrInvalidSize = errors.New("arena: allocation size must be positive")

	// ErrInvalidAlignment indicates an alignment that is not a positive power of two.
	ErrInvalidAlignment = errors.New("arena: alignment must be a positive power of two")

	// ErrOutOfMemory indicates that acquiring a new block would exceed the
	// arena's memory limit, or the request cannot be represented.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrForeignCheckpoint indicates a checkpoint captured from a different
	// arena (or the zero Checkpoint).
	ErrForeignCheckpoint = errors.New("arena: checkpoint belongs to another arena")

	// ErrStaleCheckpoint indicates a checkpoint that lies beyond the arena's
	// current position, i.e. it was discarded by an earlier Reset or Restore.
	ErrStaleCheckpoint = errors.New("arena: checkpoint already rewound past")
)
