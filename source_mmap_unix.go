//go:build unix

package arena

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MmapSource backs blocks with anonymous private memory mappings. Blocks live
// outside the Go heap and are page aligned; Release unmaps them.
//
// Memory from an MmapSource is never scanned by the garbage collector, so it
// must not hold the only reference to a Go-heap object.
type MmapSource struct{}

// Acquire maps size bytes of zeroed, read-write memory.
func (MmapSource) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "mmap source: acquire %d bytes", size)
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap source: acquire %d bytes", size)
	}
	return buf, nil
}

// Release unmaps buf.
func (MmapSource) Release(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := unix.Munmap(buf); err != nil {
		return errors.Wrapf(err, "mmap source: release %d bytes", len(buf))
	}
	return nil
}
