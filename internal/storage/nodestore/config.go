package nodestore

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/storage/nodestore/compression"
)

// Backend names accepted by Config.Backend.
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Config holds configuration options for the NodeStore.
type Config struct {
	// Backend specifies the storage backend to use
	Backend string `mapstructure:"backend"`

	// Path specifies the file system path for data storage. Unused by the
	// memory backend.
	Path string `mapstructure:"path"`

	// CacheSize is the number of decoded entries kept in memory. Zero
	// disables the cache.
	CacheSize int `mapstructure:"cache_size"`

	// Compression configuration
	Compressor       string `mapstructure:"compressor"`
	CompressionLevel int    `mapstructure:"compression_level"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:          BackendPebble,
		Path:             "./data/nodestore",
		CacheSize:        4096,
		Compressor:       "lz4",
		CompressionLevel: 1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPebble, BackendLevelDB:
		if c.Path == "" {
			return errors.New("path must be specified")
		}
	case BackendMemory:
	case "":
		return errors.New("backend must be specified")
	default:
		return fmt.Errorf("unsupported backend: %s", c.Backend)
	}

	if c.CacheSize < 0 {
		return errors.New("cache_size must be non-negative")
	}

	if c.CompressionLevel < 0 || c.CompressionLevel > 9 {
		return errors.New("compression_level must be between 0 and 9")
	}

	if !compression.IsAvailable(c.Compressor) {
		return fmt.Errorf("unsupported compressor: %s", c.Compressor)
	}

	return nil
}

// Option represents a functional option for configuring the NodeStore.
type Option func(*Config)

// WithPath sets the storage path.
func WithPath(path string) Option {
	return func(c *Config) {
		c.Path = path
	}
}

// WithBackend sets the storage backend.
func WithBackend(backend string) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithCacheSize sets the cache size (number of items).
func WithCacheSize(size int) Option {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithCompression sets the compression algorithm and level.
func WithCompression(compressor string, level int) Option {
	return func(c *Config) {
		c.Compressor = compressor
		c.CompressionLevel = level
	}
}

// ApplyOptions applies the given options to the config.
func (c *Config) ApplyOptions(options ...Option) {
	for _, option := range options {
		option(c)
	}
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("nodestore(backend=%s path=%s cache=%d compressor=%s/%d)",
		c.Backend, c.Path, c.CacheSize, c.Compressor, c.CompressionLevel)
}
