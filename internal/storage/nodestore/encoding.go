package nodestore

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/storage/nodestore/compression"
)

// Entries are stored as
//
//	codec id (1) | uncompressed length (4, big endian) | payload
const headerSize = 1 + 4

// minCompressionSize is the smallest entry worth compressing.
const minCompressionSize = 64

// statePrefix namespaces ledger state entries inside the database.
const statePrefix = 's'

func stateKey(key [32]byte) []byte {
	out := make([]byte, 1+len(key))
	out[0] = statePrefix
	copy(out[1:], key[:])
	return out
}

// stateRange returns the iterator bounds covering every state entry.
func stateRange() (start, end []byte) {
	return []byte{statePrefix}, []byte{statePrefix + 1}
}

func encodeNode(c compression.Compressor, level int, data []byte) ([]byte, error) {
	id := byte(0)
	payload := data
	if len(data) >= minCompressionSize {
		packed, ok, err := c.Compress(data, level)
		if err != nil {
			return nil, err
		}
		if ok {
			id = c.ID()
			payload = packed
		}
	}

	out := make([]byte, headerSize+len(payload))
	out[0] = id
	binary.BigEndian.PutUint32(out[1:headerSize], uint32(len(data)))
	copy(out[headerSize:], payload)
	return out, nil
}

func decodeNode(raw []byte) ([]byte, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: entry of %d bytes has no header", ErrDataCorrupt, len(raw))
	}
	c, err := compression.ByID(raw[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataCorrupt, err)
	}
	size := int(binary.BigEndian.Uint32(raw[1:headerSize]))
	data, err := c.Decompress(raw[headerSize:], size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataCorrupt, err)
	}
	return data, nil
}
