package ledger

import (
	"context"
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
)

// ErrSandboxClosed is returned when using a sandbox after Apply or Discard.
var ErrSandboxClosed = errors.New("sandbox already applied or discarded")

// parent is a view a sandbox can push its changes into.
type parent interface {
	ReadView
	applyChanges(ctx context.Context, mods map[[32]byte][]byte, dels map[[32]byte]bool) error
}

// Sandbox provides isolated, reversible state changes on top of a Ledger or
// another Sandbox. Nothing is visible outside the sandbox until Apply.
type Sandbox struct {
	parent parent

	// modifications holds inserted or updated entries (key -> new data)
	modifications map[[32]byte][]byte

	// deletions holds erased entry keys
	deletions map[[32]byte]bool

	closed bool
}

// NewSandbox creates a sandbox over a committed ledger.
func NewSandbox(l *Ledger) *Sandbox {
	return newSandbox(l)
}

// NewChildSandbox creates a sandbox layered on top of another sandbox.
// Changes are pushed to the parent when Apply is called.
func NewChildSandbox(s *Sandbox) *Sandbox {
	return newSandbox(s)
}

func newSandbox(p parent) *Sandbox {
	return &Sandbox{
		parent:        p,
		modifications: make(map[[32]byte][]byte),
		deletions:     make(map[[32]byte]bool),
	}
}

// Read reads a ledger entry from the sandbox or its parent.
func (s *Sandbox) Read(k keylet.Keylet) ([]byte, error) {
	if s.deletions[k.Key] {
		return nil, ErrNotFound
	}
	if data, ok := s.modifications[k.Key]; ok {
		return cloneBytes(data), nil
	}
	return s.parent.Read(k)
}

func (s *Sandbox) Exists(k keylet.Keylet) (bool, error) {
	if s.deletions[k.Key] {
		return false, nil
	}
	if _, ok := s.modifications[k.Key]; ok {
		return true, nil
	}
	return s.parent.Exists(k)
}

// Insert adds an entry that must not exist yet.
func (s *Sandbox) Insert(k keylet.Keylet, data []byte) error {
	if s.closed {
		return ErrSandboxClosed
	}
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrExists
	}
	delete(s.deletions, k.Key)
	s.modifications[k.Key] = cloneBytes(data)
	return nil
}

// Update replaces an existing entry.
func (s *Sandbox) Update(k keylet.Keylet, data []byte) error {
	if s.closed {
		return ErrSandboxClosed
	}
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	s.modifications[k.Key] = cloneBytes(data)
	return nil
}

// Erase marks an existing entry for deletion.
func (s *Sandbox) Erase(k keylet.Keylet) error {
	if s.closed {
		return ErrSandboxClosed
	}
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	delete(s.modifications, k.Key)
	s.deletions[k.Key] = true
	return nil
}

// ForEach iterates over all entries visible from this sandbox in key order.
func (s *Sandbox) ForEach(fn func(key [32]byte, data []byte) bool) error {
	merged := make(map[[32]byte][]byte)
	err := s.parent.ForEach(func(key [32]byte, data []byte) bool {
		if !s.deletions[key] {
			merged[key] = data
		}
		return true
	})
	if err != nil {
		return err
	}
	for k, v := range s.modifications {
		merged[k] = v
	}
	for _, k := range sortedKeys(merged) {
		if !fn(k, cloneBytes(merged[k])) {
			return nil
		}
	}
	return nil
}

// Changes returns the number of pending modifications and deletions.
func (s *Sandbox) Changes() int {
	return len(s.modifications) + len(s.deletions)
}

// Apply pushes all pending changes into the parent as one unit and closes
// the sandbox. If the parent rejects the changes the sandbox stays open.
func (s *Sandbox) Apply(ctx context.Context) error {
	if s.closed {
		return ErrSandboxClosed
	}
	if err := s.parent.applyChanges(ctx, s.modifications, s.deletions); err != nil {
		return err
	}
	s.close()
	return nil
}

// Discard drops all pending changes.
func (s *Sandbox) Discard() {
	s.close()
}

func (s *Sandbox) close() {
	s.modifications = make(map[[32]byte][]byte)
	s.deletions = make(map[[32]byte]bool)
	s.closed = true
}

// applyChanges merges a child's changeset into this sandbox.
func (s *Sandbox) applyChanges(_ context.Context, mods map[[32]byte][]byte, dels map[[32]byte]bool) error {
	if s.closed {
		return ErrSandboxClosed
	}
	for k := range dels {
		delete(s.modifications, k)
		s.deletions[k] = true
	}
	for k, v := range mods {
		delete(s.deletions, k)
		s.modifications[k] = v
	}
	return nil
}
