// Package nodestore persists committed ledger entries. Entries are written
// to a key-value backend (pebble, leveldb or memory) compressed with a
// configurable codec, and recently used entries are kept decoded in an LRU
// cache.
package nodestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/LeJamon/goNFTize/internal/storage/database"
	"github.com/LeJamon/goNFTize/internal/storage/database/leveldb"
	"github.com/LeJamon/goNFTize/internal/storage/database/pebble"
	"github.com/LeJamon/goNFTize/internal/storage/nodestore/compression"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Statistics holds counters for one Database.
type Statistics struct {
	Reads       uint64
	CacheHits   uint64
	CacheMisses uint64
	Writes      uint64
	Deletes     uint64
	WriteBytes  uint64
	CacheSize   int
	BackendName string
}

// Database stores ledger entries keyed by their 32-byte ledger key. It
// satisfies ledger.Store.
type Database struct {
	db         database.DB
	backend    string
	compressor compression.Compressor
	level      int
	cache      *lru.Cache[[32]byte, []byte]
	log        *zap.Logger

	reads, hits, misses atomic.Uint64
	writes, deletes     atomic.Uint64
	writeBytes          atomic.Uint64
}

// Open opens the backend named in config and wraps it.
func Open(config *Config, log *zap.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid nodestore config: %w", err)
	}

	var (
		db  database.DB
		err error
	)
	switch config.Backend {
	case BackendPebble:
		db, err = pebble.Open(config.Path)
	case BackendLevelDB:
		db, err = leveldb.Open(config.Path)
	case BackendMemory:
		db, err = leveldb.OpenMemory()
	default:
		err = fmt.Errorf("%w: %s", database.ErrUnknownBackend, config.Backend)
	}
	if err != nil {
		return nil, err
	}

	store, err := New(db, config, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an open database. The Database takes ownership of db.
func New(db database.DB, config *Config, log *zap.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	compressor, err := compression.Get(config.Compressor)
	if err != nil {
		return nil, fmt.Errorf("failed to get compressor %s: %w", config.Compressor, err)
	}

	d := &Database{
		db:         db,
		backend:    config.Backend,
		compressor: compressor,
		level:      config.CompressionLevel,
		log:        log.Named("nodestore"),
	}
	if config.CacheSize > 0 {
		d.cache, err = lru.New[[32]byte, []byte](config.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	d.log.Info("node store opened",
		zap.String("backend", config.Backend),
		zap.String("path", config.Path),
		zap.String("compressor", compressor.Name()),
		zap.Int("cache_size", config.CacheSize))
	return d, nil
}

// Fetch returns the entry stored at key.
func (d *Database) Fetch(ctx context.Context, key [32]byte) ([]byte, error) {
	d.reads.Add(1)
	if d.cache != nil {
		if data, ok := d.cache.Get(key); ok {
			d.hits.Add(1)
			return cloneBytes(data), nil
		}
		d.misses.Add(1)
	}

	raw, err := d.db.Read(ctx, stateKey(key))
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			err = ErrNotFound
		}
		return nil, wrapError(err, "fetch", d.backend, &key)
	}
	data, err := decodeNode(raw)
	if err != nil {
		return nil, wrapError(err, "fetch", d.backend, &key)
	}
	if d.cache != nil {
		d.cache.Add(key, data)
	}
	return cloneBytes(data), nil
}

// StoreBatch writes puts and deletes in one atomic backend batch. Keys are
// written in order so equal changesets produce equal batches.
func (d *Database) StoreBatch(ctx context.Context, puts map[[32]byte][]byte, deletes [][32]byte) error {
	keys := make([][32]byte, 0, len(puts))
	for k := range puts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return string(keys[i][:]) < string(keys[j][:]) })

	ops := make([]database.BatchOperation, 0, len(puts)+len(deletes))
	var written uint64
	for _, k := range keys {
		encoded, err := encodeNode(d.compressor, d.level, puts[k])
		if err != nil {
			return wrapError(err, "encode", d.backend, &k)
		}
		written += uint64(len(encoded))
		ops = append(ops, database.Put(stateKey(k), encoded))
	}
	for _, k := range deletes {
		ops = append(ops, database.Del(stateKey(k)))
	}

	if err := d.db.Batch(ctx, ops); err != nil {
		return wrapError(err, "store batch", d.backend, nil)
	}

	if d.cache != nil {
		for _, k := range keys {
			d.cache.Add(k, cloneBytes(puts[k]))
		}
		for _, k := range deletes {
			d.cache.Remove(k)
		}
	}
	d.writes.Add(uint64(len(keys)))
	d.deletes.Add(uint64(len(deletes)))
	d.writeBytes.Add(written)
	d.log.Debug("stored batch",
		zap.Int("puts", len(keys)),
		zap.Int("deletes", len(deletes)),
		zap.Uint64("bytes", written))
	return nil
}

// ForEach visits every stored entry in key order. An error from fn stops
// the walk and is returned.
func (d *Database) ForEach(ctx context.Context, fn func(key [32]byte, data []byte) error) error {
	start, end := stateRange()
	it, err := d.db.Iterator(ctx, start, end)
	if err != nil {
		return wrapError(err, "iterate", d.backend, nil)
	}
	defer it.Close()

	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := it.Key()
		if len(raw) != 33 {
			return wrapError(fmt.Errorf("%w: key of %d bytes", ErrDataCorrupt, len(raw)), "iterate", d.backend, nil)
		}
		var key [32]byte
		copy(key[:], raw[1:])
		data, err := decodeNode(it.Value())
		if err != nil {
			return wrapError(err, "iterate", d.backend, &key)
		}
		if err := fn(key, data); err != nil {
			return err
		}
	}
	return wrapError(it.Error(), "iterate", d.backend, nil)
}

// Stats returns a snapshot of the counters.
func (d *Database) Stats() Statistics {
	s := Statistics{
		Reads:       d.reads.Load(),
		CacheHits:   d.hits.Load(),
		CacheMisses: d.misses.Load(),
		Writes:      d.writes.Load(),
		Deletes:     d.deletes.Load(),
		WriteBytes:  d.writeBytes.Load(),
		BackendName: d.backend,
	}
	if d.cache != nil {
		s.CacheSize = d.cache.Len()
	}
	return s
}

// Close closes the backend.
func (d *Database) Close() error {
	if d.cache != nil {
		d.cache.Purge()
	}
	return d.db.Close()
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
