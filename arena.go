package arena

import (
	"log/slog"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultBlockSize is a reasonable default block size for new arenas (64 KiB).
const DefaultBlockSize = 1 << 16

// ptrAlign is the alignment used by AllocBytes.
const ptrAlign = int(unsafe.Alignof(uintptr(0)))

// block is a fixed-capacity region with its own write cursor.
type block struct {
	buf   []byte // len(buf) is the capacity and never changes
	index int    // next free byte in buf
}

// fit reports the padding needed to align the next allocation in b and
// whether size bytes fit after it.
func (b *block) fit(size, alignment int) (int, bool) {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf))) + uintptr(b.index)
	pad := int((uintptr(alignment) - addr%uintptr(alignment)) % uintptr(alignment))
	free := len(b.buf) - b.index
	return pad, pad <= free && size <= free-pad
}

// Arena is a chunked bump allocator. Not goroutine-safe; use SafeArena or
// one arena per goroutine for concurrent access.
//
// Blocks form a chain in creation order. Every block after the current one
// is empty; blocks are only ever appended, never resized or removed before
// Free.
type Arena struct {
	blocks    []*block
	cur       int    // index of current in blocks, -1 before the first block
	current   *block // block accepting allocations
	blockSize int

	capacity int // sum of block capacities
	inUse    int // bytes handed out, padding included
	peak     int

	src    BlockSource
	limit  int
	logger *slog.Logger
	freed  bool
}

// New creates an empty arena whose blocks hold at least blockSize bytes.
// No memory is acquired until the first allocation.
func New(blockSize int, opts ...Option) (*Arena, error) {
	if blockSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidBlockSize, "new arena with block size %d", blockSize)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Arena{
		cur:       -1,
		blockSize: blockSize,
		src:       o.source,
		limit:     o.limit,
		logger:    o.logger,
	}, nil
}

// Alloc returns a pointer to size bytes aligned to alignment, which must be
// a power of two. The memory is not zeroed and stays valid until Free, or
// until a Reset or Restore rewinds past it.
//
// On error the arena is left exactly as it was.
func (a *Arena) Alloc(size, alignment int) (unsafe.Pointer, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "alloc %d bytes", size)
	}
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, errors.Wrapf(ErrInvalidAlignment, "alloc %d bytes aligned to %d", size, alignment)
	}

	// Fast path: the current block has room.
	if c := a.current; c != nil {
		if pad, ok := c.fit(size, alignment); ok {
			return a.bump(c, pad, size), nil
		}
	}

	c, pad, err := a.advance(size, alignment)
	if err != nil {
		return nil, err
	}
	return a.bump(c, pad, size), nil
}

// AllocBytes returns an n-byte slice aligned to pointer size. The contents
// are not zeroed.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	p, err := a.Alloc(n, ptrAlign)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), n), nil
}

// EnsureCapacity makes sure the next n-byte allocation with alignment 1 is
// served without acquiring memory, moving to a retained or new block if the
// current one is too full.
func (a *Arena) EnsureCapacity(n int) error {
	if err := a.check(); err != nil {
		return err
	}
	if n <= 0 {
		return errors.Wrapf(ErrInvalidSize, "ensure capacity %d", n)
	}
	if c := a.current; c != nil {
		if _, ok := c.fit(n, 1); ok {
			return nil
		}
	}
	_, _, err := a.advance(n, 1)
	return err
}

// Reset rewinds every block to empty and makes the first block current
// again. Memory is kept for reuse. Previously returned pointers must not be
// used afterwards. Reset is a no-op on a nil, freed or empty arena.
func (a *Arena) Reset() {
	if a == nil || a.freed || len(a.blocks) == 0 {
		return
	}
	for _, b := range a.blocks {
		b.index = 0
	}
	a.setCurrent(0)
	a.inUse = 0
}

// Free returns every block to the block source and makes the arena
// unusable. Freeing a nil or already freed arena does nothing. All blocks
// are released even if one fails; the first failure is returned.
func (a *Arena) Free() error {
	if a == nil || a.freed {
		return nil
	}
	var first error
	for i, b := range a.blocks {
		if err := a.src.Release(b.buf); err != nil && first == nil {
			first = errors.Wrapf(err, "free block %d", i)
		}
		b.buf = nil
	}
	a.logger.Debug("arena: freed",
		slog.Int("blocks", len(a.blocks)),
		slog.Int("capacity", a.capacity),
		slog.Int("peak", a.peak))

	a.blocks = nil
	a.current = nil
	a.cur = -1
	a.capacity = 0
	a.inUse = 0
	a.freed = true
	return first
}

func (a *Arena) check() error {
	if a == nil {
		return ErrNilArena
	}
	if a.freed {
		return ErrArenaFreed
	}
	return nil
}

func (a *Arena) bump(c *block, pad, size int) unsafe.Pointer {
	c.index += pad
	p := unsafe.Pointer(&c.buf[c.index])
	c.index += size
	a.inUse += pad + size
	if a.inUse > a.peak {
		a.peak = a.inUse
	}
	return p
}

func (a *Arena) setCurrent(i int) {
	a.cur = i
	a.current = a.blocks[i]
}

// advance makes current a block that can hold the request and returns it
// with the padding to apply. Blocks retained after a rewind are tried first;
// otherwise exactly one block is appended to the chain.
func (a *Arena) advance(size, alignment int) (*block, int, error) {
	for i := a.cur + 1; i < len(a.blocks); i++ {
		if pad, ok := a.blocks[i].fit(size, alignment); ok {
			if i > a.cur+1 {
				a.logger.Debug("arena: skipped retained blocks",
					slog.Int("from", a.cur+1),
					slog.Int("to", i),
					slog.Int("size", size))
			}
			a.setCurrent(i)
			return a.current, pad, nil
		}
	}
	b, err := a.grow(size, alignment)
	if err != nil {
		return nil, 0, err
	}
	pad, _ := b.fit(size, alignment)
	return b, pad, nil
}

// grow appends a block of max(size, blockSize) bytes and makes it current.
func (a *Arena) grow(size, alignment int) (*block, error) {
	b, err := a.acquire(max(size, a.blockSize))
	if err != nil {
		return nil, err
	}
	if _, ok := b.fit(size, alignment); !ok {
		// The base address needs more padding than the block has spare.
		// Retry with room for any base.
		if err := a.src.Release(b.buf); err != nil {
			return nil, errors.Wrapf(err, "release misaligned block of %d bytes", len(b.buf))
		}
		if size > math.MaxInt-(alignment-1) {
			return nil, errors.Wrapf(ErrOutOfMemory, "alloc %d bytes aligned to %d", size, alignment)
		}
		if b, err = a.acquire(max(size+alignment-1, a.blockSize)); err != nil {
			return nil, err
		}
	}

	a.blocks = append(a.blocks, b)
	a.capacity += len(b.buf)
	a.setCurrent(len(a.blocks) - 1)

	a.logger.Debug("arena: block acquired",
		slog.Int("block", a.cur),
		slog.Int("size", len(b.buf)),
		slog.Int("capacity", a.capacity))
	return b, nil
}

// acquire obtains an unlinked block of exactly n bytes from the source,
// honoring the memory limit.
func (a *Arena) acquire(n int) (*block, error) {
	if a.limit > 0 && n > a.limit-a.capacity {
		a.logger.Debug("arena: memory limit reached",
			slog.Int("request", n),
			slog.Int("capacity", a.capacity),
			slog.Int("limit", a.limit))
		return nil, errors.Wrapf(ErrOutOfMemory, "block of %d bytes exceeds limit %d (in use %d)", n, a.limit, a.capacity)
	}
	buf, err := a.src.Acquire(n)
	if err != nil {
		return nil, errors.Wrapf(err, "acquire block of %d bytes", n)
	}
	if len(buf) != n {
		if rerr := a.src.Release(buf); rerr != nil {
			a.logger.Debug("arena: release of wrong-sized block failed",
				slog.Int("size", len(buf)),
				slog.Any("error", rerr))
		}
		return nil, errors.Wrapf(ErrOutOfMemory, "block source returned %d bytes, want %d", len(buf), n)
	}
	return &block{buf: buf}, nil
}
