// Package nftoken implements the asset registry: deployable registries of
// non-fungible tokens with single-token approvals, and the RegistryCreate,
// TokenMint, TokenApprove and TokenTransfer transactions that drive them.
package nftoken

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNoRegistry    = errors.New("registry not found")
	ErrNoToken       = errors.New("token not found")
	ErrTokenExists   = errors.New("token already minted")
	ErrNotIssuer     = errors.New("only the registry issuer may mint")
	ErrNotOwner      = errors.New("caller does not own the token")
	ErrWrongOwner    = errors.New("token is not held by the given owner")
	ErrNotAuthorized = errors.New("caller is neither owner nor approved for the token")
)

// ReadRegistry loads the registry deployed at addr.
func ReadRegistry(v ledger.ReadView, addr common.Address) (*entry.Registry, error) {
	data, err := v.Read(keylet.Registry(addr))
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoRegistry, addr.Hex())
	}
	if err != nil {
		return nil, err
	}
	r := &entry.Registry{}
	if err := entry.Decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadToken loads token id of the registry at addr.
func ReadToken(v ledger.ReadView, registry common.Address, id uint64) (*entry.Token, error) {
	data, err := v.Read(keylet.Token(registry, id))
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s #%d", ErrNoToken, registry.Hex(), id)
	}
	if err != nil {
		return nil, err
	}
	t := &entry.Token{}
	if err := entry.Decode(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ResultFor maps a registry error onto a transaction result.
func ResultFor(err error) tx.Result {
	switch {
	case err == nil:
		return tx.TesSUCCESS
	case errors.Is(err, ErrNoRegistry), errors.Is(err, ErrNoToken):
		return tx.TecNO_ENTRY
	case errors.Is(err, ErrTokenExists):
		return tx.TecDUPLICATE
	case errors.Is(err, ErrNotIssuer), errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrWrongOwner), errors.Is(err, ErrNotAuthorized):
		return tx.TecNO_PERMISSION
	default:
		return tx.TefINTERNAL
	}
}

// Store reads and writes registries and tokens on a mutable view.
type Store struct {
	view ledger.View
}

// NewStore wraps v
func NewStore(v ledger.View) *Store {
	return &Store{view: v}
}

// CreateRegistry deploys a new, empty registry.
func (s *Store) CreateRegistry(r *entry.Registry) error {
	data, err := entry.Encode(r)
	if err != nil {
		return err
	}
	if err := s.view.Insert(keylet.Registry(r.Address), data); err != nil {
		if errors.Is(err, ledger.ErrExists) {
			return fmt.Errorf("registry %s: %w", r.Address.Hex(), err)
		}
		return err
	}
	return nil
}

// Contract returns a handle on the registry deployed at addr. The registry
// is not read until an operation needs it.
func (s *Store) Contract(addr common.Address) *Contract {
	return &Contract{store: s, address: addr}
}

func (s *Store) updateRegistry(r *entry.Registry) error {
	data, err := entry.Encode(r)
	if err != nil {
		return err
	}
	return s.view.Update(keylet.Registry(r.Address), data)
}

func (s *Store) insertToken(t *entry.Token) error {
	data, err := entry.Encode(t)
	if err != nil {
		return err
	}
	return s.view.Insert(keylet.Token(t.Registry, t.ID), data)
}

func (s *Store) updateToken(t *entry.Token) error {
	data, err := entry.Encode(t)
	if err != nil {
		return err
	}
	return s.view.Update(keylet.Token(t.Registry, t.ID), data)
}
