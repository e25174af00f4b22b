package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"lz4", "none"}, Available())
	assert.True(t, IsAvailable("lz4"))
	assert.False(t, IsAvailable("zstd"))

	_, err := Get("zstd")
	assert.Error(t, err)

	c, err := ByID(1)
	require.NoError(t, err)
	assert.Equal(t, "lz4", c.Name())

	_, err = ByID(200)
	assert.Error(t, err)
}

func TestLZ4RoundTrip(t *testing.T) {
	c, err := Get("lz4")
	require.NoError(t, err)

	data := bytes.Repeat([]byte(`{"Kind":"Escrow","PurchasePrice":100}`), 20)
	packed, ok, err := c.Compress(data, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Less(t, len(packed), len(data))

	unpacked, err := c.Decompress(packed, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, unpacked)

	_, err = c.Decompress(packed, len(data)+5)
	assert.Error(t, err)
}

func TestLZ4Incompressible(t *testing.T) {
	c := &LZ4Compressor{}
	_, ok, err := c.Compress([]byte{0x01, 0x02, 0x03}, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Compress(nil, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoCompressor(t *testing.T) {
	c := &NoCompressor{}
	_, ok, err := c.Compress([]byte("abc"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	out, err := c.Decompress([]byte("abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	_, err = c.Decompress([]byte("abc"), 4)
	assert.Error(t, err)
}
