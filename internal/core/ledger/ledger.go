// Package ledger holds the committed world state (accounts, registries,
// tokens, escrows) and the reversible sandboxes transactions are applied in.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
)

var (
	// ErrNotFound is returned when a ledger entry does not exist.
	ErrNotFound = errors.New("ledger entry not found")

	// ErrExists is returned when inserting an entry that already exists.
	ErrExists = errors.New("ledger entry already exists")
)

// ReadView provides read access to ledger state.
type ReadView interface {
	// Read returns the entry stored at k, or ErrNotFound.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// ForEach iterates over all state entries in key order.
	// If fn returns false, iteration stops early
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// View is a mutable view of ledger state.
type View interface {
	ReadView

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error
}

// Store persists committed ledger entries.
type Store interface {
	// StoreBatch writes puts and deletes atomically.
	StoreBatch(ctx context.Context, puts map[[32]byte][]byte, deletes [][32]byte) error

	// ForEach visits every persisted entry.
	ForEach(ctx context.Context, fn func(key [32]byte, data []byte) error) error
}

// Ledger is the committed state. Reads are safe for concurrent use; writes
// only happen through Sandbox.Apply.
type Ledger struct {
	mu    sync.RWMutex
	state map[[32]byte][]byte
	store Store

	// applied counts committed changesets.
	applied uint64
}

// New creates an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{state: make(map[[32]byte][]byte)}
}

// Open creates a ledger backed by store and loads every persisted entry.
func Open(ctx context.Context, store Store) (*Ledger, error) {
	l := New()
	l.store = store
	if store == nil {
		return l, nil
	}
	err := store.ForEach(ctx, func(key [32]byte, data []byte) error {
		l.state[key] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ledger state: %w", err)
	}
	return l, nil
}

// Read returns a copy of the entry stored at k.
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.state[k.Key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(data), nil
}

func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.state[k.Key]
	return ok, nil
}

// ForEach iterates over a snapshot of the committed state in key order.
func (l *Ledger) ForEach(fn func(key [32]byte, data []byte) bool) error {
	l.mu.RLock()
	keys := sortedKeys(l.state)
	snapshot := make(map[[32]byte][]byte, len(keys))
	for _, k := range keys {
		snapshot[k] = l.state[k]
	}
	l.mu.RUnlock()

	for _, k := range keys {
		if !fn(k, cloneBytes(snapshot[k])) {
			return nil
		}
	}
	return nil
}

// Len returns the number of committed entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.state)
}

// Applied returns the number of changesets committed so far.
func (l *Ledger) Applied() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.applied
}

// applyChanges persists the changeset first and only then publishes it in
// memory, so a storage failure leaves the ledger untouched.
func (l *Ledger) applyChanges(ctx context.Context, mods map[[32]byte][]byte, dels map[[32]byte]bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		deletes := make([][32]byte, 0, len(dels))
		for k := range dels {
			deletes = append(deletes, k)
		}
		if err := l.store.StoreBatch(ctx, mods, deletes); err != nil {
			return fmt.Errorf("persist changeset: %w", err)
		}
	}

	for k := range dels {
		delete(l.state, k)
	}
	for k, v := range mods {
		l.state[k] = v
	}
	l.applied++
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func sortedKeys(m map[[32]byte][]byte) [][32]byte {
	keys := make([][32]byte, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})
	return keys
}

func lessKey(a, b [32]byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
