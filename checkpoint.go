package arena

import "github.com/pkg/errors"

// position is a point in the allocation order: a block in the chain and a
// cursor inside it. Block -1 is the start of an arena with no blocks.
type position struct {
	block int
	index int
}

func (p position) before(q position) bool {
	if p.block != q.block {
		return p.block < q.block
	}
	return p.index < q.index
}

// Checkpoint is an allocation position captured by Arena.Checkpoint.
// The zero value is not a valid checkpoint.
type Checkpoint struct {
	arena *Arena
	pos   position
}

// Checkpoint captures the current allocation position. Restoring it later
// discards everything allocated after this call.
//
// Checkpoints nest: an outer checkpoint may be restored after inner ones.
// A checkpoint is only a position, so once the arena has been rewound to a
// point before it Restore rejects it until allocation passes that point
// again.
func (a *Arena) Checkpoint() Checkpoint {
	if a.check() != nil {
		return Checkpoint{}
	}
	return Checkpoint{arena: a, pos: a.tip()}
}

// Restore rewinds the arena to cp. The captured block gets its captured
// cursor back, every block after it is emptied and it becomes current again.
// Blocks before it are untouched. A checkpoint taken before the first
// allocation is equivalent to Reset.
//
// Pointers allocated after cp must not be used afterwards.
func (a *Arena) Restore(cp Checkpoint) error {
	if err := a.check(); err != nil {
		return err
	}
	if cp.arena != a {
		return ErrForeignCheckpoint
	}
	if a.tip().before(cp.pos) {
		return errors.Wrapf(ErrStaleCheckpoint, "restore to block %d index %d", cp.pos.block, cp.pos.index)
	}
	if cp.pos.block < 0 {
		a.Reset()
		return nil
	}

	// Blocks past cur are already empty.
	for i := cp.pos.block + 1; i <= a.cur; i++ {
		a.inUse -= a.blocks[i].index
		a.blocks[i].index = 0
	}
	b := a.blocks[cp.pos.block]
	a.inUse -= b.index - cp.pos.index
	b.index = cp.pos.index
	a.setCurrent(cp.pos.block)
	return nil
}

// Scope runs fn between a checkpoint and its restore, so everything fn
// allocates is discarded when it returns. fn's error takes precedence.
func (a *Arena) Scope(fn func() error) error {
	if err := a.check(); err != nil {
		return err
	}
	cp := a.Checkpoint()
	err := fn()
	if rerr := a.Restore(cp); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// tip is the arena's current allocation position. Blocks after it are
// empty, so no checkpoint beyond it can be restored.
func (a *Arena) tip() position {
	if a.current == nil {
		return position{block: -1}
	}
	return position{block: a.cur, index: a.current.index}
}
