// Package dbtest holds the behavior every database.DB backend must share.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/LeJamon/goNFTize/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opener returns a fresh, empty database for one subtest.
type Opener func(t *testing.T) database.DB

// Run runs the shared backend suite against databases returned by open.
func Run(t *testing.T, open Opener) {
	t.Run("ReadWrite", func(t *testing.T) { testReadWrite(t, open(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, open(t)) })
	t.Run("Batch", func(t *testing.T) { testBatch(t, open(t)) })
	t.Run("Iterator", func(t *testing.T) { testIterator(t, open(t)) })
	t.Run("Closed", func(t *testing.T) { testClosed(t, open(t)) })
}

func testReadWrite(t *testing.T, db database.DB) {
	ctx := context.Background()
	defer db.Close()

	_, err := db.Read(ctx, []byte("missing"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	require.NoError(t, db.Write(ctx, []byte("k"), []byte("v1")))
	got, err := db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// The returned slice belongs to the caller
	got[0] = 'x'
	again, err := db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, db.Write(ctx, []byte("k"), []byte("v2")))
	got, err = db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func testDelete(t *testing.T, db database.DB) {
	ctx := context.Background()
	defer db.Close()

	require.NoError(t, db.Write(ctx, []byte("k"), []byte("v")))
	require.NoError(t, db.Delete(ctx, []byte("k")))
	_, err := db.Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, db.Delete(ctx, []byte("never")))
}

func testBatch(t *testing.T, db database.DB) {
	ctx := context.Background()
	defer db.Close()

	require.NoError(t, db.Write(ctx, []byte("gone"), []byte("v")))
	err := db.Batch(ctx, []database.BatchOperation{
		database.Put([]byte("a"), []byte("1")),
		database.Put([]byte("b"), []byte("2")),
		database.Del([]byte("gone")),
	})
	require.NoError(t, err)

	for key, want := range map[string]string{"a": "1", "b": "2"} {
		got, err := db.Read(ctx, []byte(key))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
	_, err = db.Read(ctx, []byte("gone"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	err = db.Batch(ctx, []database.BatchOperation{{Type: database.BatchOpType(9), Key: []byte("c")}})
	assert.Error(t, err)
	_, err = db.Read(ctx, []byte("c"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = db.Batch(cancelled, []database.BatchOperation{database.Put([]byte("d"), []byte("4"))})
	assert.ErrorIs(t, err, context.Canceled)
}

func testIterator(t *testing.T, db database.DB) {
	ctx := context.Background()
	defer db.Close()

	for i := 0; i < 10; i++ {
		key := []byte(fmt.Sprintf("key-%02d", i))
		require.NoError(t, db.Write(ctx, key, []byte{byte(i)}))
	}

	collect := func(start, end []byte) []string {
		it, err := db.Iterator(ctx, start, end)
		require.NoError(t, err)
		defer it.Close()
		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		require.NoError(t, it.Error())
		return keys
	}

	all := collect(nil, nil)
	require.Len(t, all, 10)
	assert.Equal(t, "key-00", all[0])
	assert.Equal(t, "key-09", all[9])

	assert.Equal(t, []string{"key-03", "key-04", "key-05"},
		collect([]byte("key-03"), []byte("key-06")))
	assert.Empty(t, collect([]byte("zzz"), nil))

	it, err := db.Iterator(ctx, []byte("key-07"), nil)
	require.NoError(t, err)
	require.True(t, it.Next())
	assert.Equal(t, []byte{7}, it.Value())
	require.NoError(t, it.Close())
}

func testClosed(t *testing.T, db database.DB) {
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := db.Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, database.ErrDBClosed)
	assert.ErrorIs(t, db.Write(ctx, []byte("k"), []byte("v")), database.ErrDBClosed)
	assert.ErrorIs(t, db.Batch(ctx, nil), database.ErrDBClosed)
	_, err = db.Iterator(ctx, nil, nil)
	assert.ErrorIs(t, err, database.ErrDBClosed)
}
