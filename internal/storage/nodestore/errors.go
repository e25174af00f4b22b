package nodestore

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Fetch for keys that were never stored.
	ErrNotFound = errors.New("node not found")

	// ErrDataCorrupt is returned when a stored entry cannot be decoded.
	ErrDataCorrupt = errors.New("node data corrupt")
)

// NodeStoreError records which operation on which key failed.
type NodeStoreError struct {
	Operation string
	Backend   string
	Key       *[32]byte
	Err       error
}

func (e *NodeStoreError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("nodestore %s %s [%s]: %v",
			e.Backend, e.Operation, hex.EncodeToString(e.Key[:]), e.Err)
	}
	return fmt.Sprintf("nodestore %s %s: %v", e.Backend, e.Operation, e.Err)
}

func (e *NodeStoreError) Unwrap() error {
	return e.Err
}

func wrapError(err error, operation, backend string, key *[32]byte) error {
	if err == nil {
		return nil
	}
	return &NodeStoreError{Operation: operation, Backend: backend, Key: key, Err: err}
}

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDataCorrupt reports whether err means a stored entry was unreadable.
func IsDataCorrupt(err error) bool {
	return errors.Is(err, ErrDataCorrupt)
}
