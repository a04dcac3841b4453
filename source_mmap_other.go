//go:build !unix

package arena

// MmapSource falls back to the Go heap where anonymous mappings are not
// available.
type MmapSource struct{ HeapSource }
