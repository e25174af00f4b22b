package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

// memStore is a Store that records batches and can be told to fail.
type memStore struct {
	data    map[[32]byte][]byte
	batches int
	fail    error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[[32]byte][]byte)}
}

func (m *memStore) StoreBatch(_ context.Context, puts map[[32]byte][]byte, deletes [][32]byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.batches++
	for _, k := range deletes {
		delete(m.data, k)
	}
	for k, v := range puts {
		m.data[k] = v
	}
	return nil
}

func (m *memStore) ForEach(_ context.Context, fn func(key [32]byte, data []byte) error) error {
	for k, v := range m.data {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func TestSandboxIsolation(t *testing.T) {
	l := New()
	sb := NewSandbox(l)

	k := keylet.Account(alice)
	require.NoError(t, sb.Insert(k, []byte("a")))

	exists, err := l.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists, "committed ledger must not see sandbox writes")

	data, err := sb.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	require.NoError(t, sb.Apply(context.Background()))
	data, err = l.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
	assert.Equal(t, uint64(1), l.Applied())
}

func TestSandboxDiscard(t *testing.T) {
	l := New()
	sb := NewSandbox(l)
	require.NoError(t, sb.Insert(keylet.Account(alice), []byte("a")))
	sb.Discard()

	assert.Equal(t, 0, l.Len())
	require.ErrorIs(t, sb.Apply(context.Background()), ErrSandboxClosed)
	require.ErrorIs(t, sb.Insert(keylet.Account(bob), nil), ErrSandboxClosed)
}

func TestSandboxInsertUpdateErase(t *testing.T) {
	l := New()
	sb := NewSandbox(l)
	k := keylet.Account(alice)

	require.ErrorIs(t, sb.Update(k, []byte("x")), ErrNotFound)
	require.ErrorIs(t, sb.Erase(k), ErrNotFound)
	require.NoError(t, sb.Insert(k, []byte("x")))
	require.ErrorIs(t, sb.Insert(k, []byte("y")), ErrExists)
	require.NoError(t, sb.Update(k, []byte("y")))
	require.NoError(t, sb.Erase(k))

	_, err := sb.Read(k)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestChildSandbox(t *testing.T) {
	l := New()
	root := NewSandbox(l)
	require.NoError(t, root.Insert(keylet.Account(alice), []byte("a")))

	child := NewChildSandbox(root)
	require.NoError(t, child.Erase(keylet.Account(alice)))
	require.NoError(t, child.Insert(keylet.Account(bob), []byte("b")))

	exists, err := root.Exists(keylet.Account(bob))
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, child.Apply(context.Background()))
	exists, err = root.Exists(keylet.Account(alice))
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, root.Apply(context.Background()))
	assert.Equal(t, 1, l.Len())
}

func TestForEachMergesSandbox(t *testing.T) {
	l := New()
	seed := NewSandbox(l)
	require.NoError(t, seed.Insert(keylet.Account(alice), []byte("a")))
	require.NoError(t, seed.Apply(context.Background()))

	sb := NewSandbox(l)
	require.NoError(t, sb.Insert(keylet.Account(bob), []byte("b")))
	require.NoError(t, sb.Erase(keylet.Account(alice)))

	var seen [][]byte
	require.NoError(t, sb.ForEach(func(_ [32]byte, data []byte) bool {
		seen = append(seen, data)
		return true
	}))
	assert.Equal(t, [][]byte{[]byte("b")}, seen)
}

func TestOpenLoadsStoreAndPersistsChanges(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	l, err := Open(ctx, store)
	require.NoError(t, err)

	sb := NewSandbox(l)
	require.NoError(t, NewAccounts(sb).Credit(alice, amount.Coins(5)))
	require.NoError(t, sb.Apply(ctx))
	assert.Equal(t, 1, store.batches)

	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	bal, err := BalanceOf(reopened, alice)
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(5), bal)
}

func TestStoreFailureLeavesLedgerUntouched(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	l, err := Open(ctx, store)
	require.NoError(t, err)

	store.fail = errors.New("disk full")
	sb := NewSandbox(l)
	require.NoError(t, NewAccounts(sb).Credit(alice, amount.Coins(5)))
	require.Error(t, sb.Apply(ctx))

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, uint64(0), l.Applied())
}

func TestAccountsTransfer(t *testing.T) {
	sb := NewSandbox(New())
	accts := NewAccounts(sb)

	require.NoError(t, accts.Credit(alice, amount.Coins(10)))
	require.NoError(t, accts.Transfer(alice, bob, amount.Coins(4)))

	bal, err := accts.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(6), bal)
	bal, err = accts.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(4), bal)

	err = accts.Transfer(bob, alice, amount.Coins(5))
	require.ErrorIs(t, err, ErrUnfunded)
	require.ErrorIs(t, accts.Transfer(bob, bob, amount.Coins(5)), ErrUnfunded)
	require.NoError(t, accts.Transfer(bob, alice, 0))
}

func TestAccountsSequence(t *testing.T) {
	accts := NewAccounts(NewSandbox(New()))

	seq, err := accts.BumpSequence(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	seq, err = accts.Sequence(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
}

func TestIsContract(t *testing.T) {
	l := New()
	sb := NewSandbox(l)
	registry := common.HexToAddress("0x0c")
	escrow := common.HexToAddress("0x0e")
	require.NoError(t, sb.Insert(keylet.Account(alice), []byte("a")))
	require.NoError(t, sb.Insert(keylet.Registry(registry), []byte("r")))
	require.NoError(t, sb.Insert(keylet.Escrow(escrow), []byte("e")))

	for addr, want := range map[common.Address]bool{alice: false, bob: false, registry: true, escrow: true} {
		got, err := IsContract(sb, addr)
		require.NoError(t, err)
		assert.Equal(t, want, got, addr.Hex())
	}
}
