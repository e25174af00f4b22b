// Package compression provides the codecs node store entries are written
// with. Each codec has a one-byte ID that is stored with the entry, so
// entries written with one codec stay readable after the configured codec
// changes.
package compression

import (
	"fmt"
	"sort"
	"sync"
)

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Name returns the name of the compression algorithm.
	Name() string

	// ID is the tag stored in front of compressed entries.
	ID() byte

	// Compress compresses the input data. ok is false when the data did not
	// shrink and should be stored as is.
	Compress(data []byte, level int) (out []byte, ok bool, err error)

	// Decompress restores data that was size bytes long before compression.
	Decompress(data []byte, size int) ([]byte, error)
}

// Factory is a function that creates a new compressor instance.
type Factory func() Compressor

var (
	mu          sync.RWMutex
	compressors = make(map[string]Factory)
	byID        = make(map[byte]Factory)
)

// Register registers a compressor factory with the given name.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	compressors[name] = factory
	byID[factory().ID()] = factory
}

// Get returns a new compressor instance for the given name.
func Get(name string) (Compressor, error) {
	mu.RLock()
	factory, ok := compressors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor: %s", name)
	}

	return factory(), nil
}

// ByID returns the compressor that wrote entries tagged id.
func ByID(id byte) (Compressor, error) {
	mu.RLock()
	factory, ok := byID[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor id: %d", id)
	}
	return factory(), nil
}

// Available returns the registered compressor names, sorted.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAvailable checks if a compressor with the given name is available.
func IsAvailable(name string) bool {
	mu.RLock()
	_, ok := compressors[name]
	mu.RUnlock()
	return ok
}

func init() {
	Register("none", func() Compressor { return &NoCompressor{} })
	Register("lz4", func() Compressor { return &LZ4Compressor{} })
}
