package nodestore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openMemory(t *testing.T, opts ...Option) *Database {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ApplyOptions(append([]Option{WithBackend(BackendMemory)}, opts...)...)
	d, err := Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func key(b byte) [32]byte {
	var k [32]byte
	k[0] = b
	return k
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{"default", nil, false},
		{"memory needs no path", []Option{WithBackend(BackendMemory), WithPath("")}, false},
		{"leveldb", []Option{WithBackend(BackendLevelDB)}, false},
		{"empty backend", []Option{WithBackend("")}, true},
		{"unknown backend", []Option{WithBackend("rocksdb")}, true},
		{"pebble needs path", []Option{WithPath("")}, true},
		{"negative cache", []Option{WithCacheSize(-1)}, true},
		{"bad level", []Option{WithCompression("lz4", 12)}, true},
		{"unknown compressor", []Option{WithCompression("zstd", 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ApplyOptions(tt.opts...)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreFetch(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	big := bytes.Repeat([]byte("escrow-state "), 50)
	err := d.StoreBatch(ctx, map[[32]byte][]byte{
		key(1): []byte("small"),
		key(2): big,
	}, nil)
	require.NoError(t, err)

	got, err := d.Fetch(ctx, key(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("small"), got)

	got, err = d.Fetch(ctx, key(2))
	require.NoError(t, err)
	assert.Equal(t, big, got)

	_, err = d.Fetch(ctx, key(3))
	assert.True(t, IsNotFound(err))
	var nsErr *NodeStoreError
	require.True(t, errors.As(err, &nsErr))
	assert.Equal(t, "fetch", nsErr.Operation)

	require.NoError(t, d.StoreBatch(ctx, nil, [][32]byte{key(1)}))
	_, err = d.Fetch(ctx, key(1))
	assert.True(t, IsNotFound(err))

	stats := d.Stats()
	assert.Equal(t, uint64(2), stats.Writes)
	assert.Equal(t, uint64(1), stats.Deletes)
	assert.Equal(t, BackendMemory, stats.BackendName)
}

func TestCompressionShrinksStoredEntries(t *testing.T) {
	ctx := context.Background()
	data := bytes.Repeat([]byte("a"), 4096)

	lz := openMemory(t)
	require.NoError(t, lz.StoreBatch(ctx, map[[32]byte][]byte{key(1): data}, nil))

	plain := openMemory(t, WithCompression("none", 0))
	require.NoError(t, plain.StoreBatch(ctx, map[[32]byte][]byte{key(1): data}, nil))

	assert.Less(t, lz.Stats().WriteBytes, plain.Stats().WriteBytes)

	// Entries stay readable whatever codec wrote them
	raw, err := lz.db.Read(ctx, stateKey(key(1)))
	require.NoError(t, err)
	require.NoError(t, plain.db.Write(ctx, stateKey(key(9)), raw))
	got, err := plain.Fetch(ctx, key(9))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t, WithCacheSize(2))

	require.NoError(t, d.StoreBatch(ctx, map[[32]byte][]byte{key(1): []byte("one")}, nil))

	got, err := d.Fetch(ctx, key(1))
	require.NoError(t, err)
	got[0] = 'X'

	again, err := d.Fetch(ctx, key(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), again)

	stats := d.Stats()
	assert.Equal(t, uint64(2), stats.Reads)
	assert.Equal(t, uint64(2), stats.CacheHits)
	assert.Equal(t, 1, stats.CacheSize)

	uncached := openMemory(t, WithCacheSize(0))
	require.NoError(t, uncached.StoreBatch(ctx, map[[32]byte][]byte{key(1): []byte("one")}, nil))
	_, err = uncached.Fetch(ctx, key(1))
	require.NoError(t, err)
	assert.Zero(t, uncached.Stats().CacheHits)
}

func TestCorruptEntry(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t, WithCacheSize(0))

	require.NoError(t, d.db.Write(ctx, stateKey(key(1)), []byte{0x01}))
	_, err := d.Fetch(ctx, key(1))
	assert.True(t, IsDataCorrupt(err))

	require.NoError(t, d.db.Write(ctx, stateKey(key(2)), []byte{0x7f, 0, 0, 0, 1, 'x'}))
	_, err = d.Fetch(ctx, key(2))
	assert.True(t, IsDataCorrupt(err))

	err = d.ForEach(ctx, func([32]byte, []byte) error { return nil })
	assert.True(t, IsDataCorrupt(err))
}

func TestForEach(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	// Keys outside the state namespace are ignored
	require.NoError(t, d.db.Write(ctx, []byte("other"), []byte("x")))
	require.NoError(t, d.StoreBatch(ctx, map[[32]byte][]byte{
		key(3): []byte("c"),
		key(1): []byte("a"),
		key(2): []byte("b"),
	}, nil))

	var seen []string
	err := d.ForEach(ctx, func(k [32]byte, data []byte) error {
		seen = append(seen, string(data))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	stop := errors.New("stop")
	calls := 0
	err = d.ForEach(ctx, func([32]byte, []byte) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestLedgerSurvivesReopen(t *testing.T) {
	for _, backend := range []string{BackendPebble, BackendLevelDB} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := DefaultConfig()
			cfg.ApplyOptions(WithBackend(backend), WithPath(filepath.Join(t.TempDir(), "nodestore")))

			addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")

			store, err := Open(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			l, err := ledger.Open(ctx, store)
			require.NoError(t, err)

			sb := ledger.NewSandbox(l)
			require.NoError(t, ledger.NewAccounts(sb).Credit(addr, amount.Amount(500)))
			require.NoError(t, sb.Apply(ctx))
			require.NoError(t, store.Close())

			store, err = Open(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			defer store.Close()
			reopened, err := ledger.Open(ctx, store)
			require.NoError(t, err)

			balance, err := ledger.BalanceOf(reopened, addr)
			require.NoError(t, err)
			assert.Equal(t, amount.Amount(500), balance)
			assert.Equal(t, l.Len(), reopened.Len())
		})
	}
}

var _ ledger.Store = (*Database)(nil)
