package compression

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// NoCompressor stores data unchanged.
type NoCompressor struct{}

func (c *NoCompressor) Name() string { return "none" }

func (c *NoCompressor) ID() byte { return 0 }

// Compress never shrinks anything.
func (c *NoCompressor) Compress(data []byte, level int) ([]byte, bool, error) {
	return nil, false, nil
}

// Decompress returns a copy of data.
func (c *NoCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, fmt.Errorf("stored size %d, expected %d", len(data), size)
	}
	return append([]byte(nil), data...), nil
}

// LZ4Compressor compresses entries as raw LZ4 blocks.
type LZ4Compressor struct{}

func (c *LZ4Compressor) Name() string { return "lz4" }

func (c *LZ4Compressor) ID() byte { return 1 }

// Compress compresses data using LZ4. The level is ignored; block mode has
// a single speed.
func (c *LZ4Compressor) Compress(data []byte, level int) ([]byte, bool, error) {
	if len(data) == 0 {
		return nil, false, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("lz4 compression failed: %w", err)
	}
	// CompressBlock reports 0 for incompressible input
	if n == 0 || n >= len(data) {
		return nil, false, nil
	}
	return compressed[:n], true, nil
}

// Decompress decompresses an LZ4 block into exactly size bytes.
func (c *LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 decompressed %d bytes, expected %d", n, size)
	}
	return out, nil
}
