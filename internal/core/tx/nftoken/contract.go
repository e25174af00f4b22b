package nftoken

import (
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is one deployed registry. Every caller argument is the account
// on whose behalf the operation runs.
type Contract struct {
	store   *Store
	address common.Address
}

// Address returns the registry address
func (c *Contract) Address() common.Address {
	return c.address
}

// OwnerOf returns the current owner of token id.
func (c *Contract) OwnerOf(id uint64) (common.Address, error) {
	t, err := ReadToken(c.store.view, c.address, id)
	if err != nil {
		return common.Address{}, err
	}
	return t.Owner, nil
}

// GetApproved returns the account approved to move token id, or the zero
// address.
func (c *Contract) GetApproved(id uint64) (common.Address, error) {
	t, err := ReadToken(c.store.view, c.address, id)
	if err != nil {
		return common.Address{}, err
	}
	return t.Approved, nil
}

// Mint creates token id owned by to. Only the issuer may mint.
func (c *Contract) Mint(caller, to common.Address, id uint64) error {
	r, err := ReadRegistry(c.store.view, c.address)
	if err != nil {
		return err
	}
	if caller != r.Issuer {
		return ErrNotIssuer
	}
	exists, err := c.store.view.Exists(keylet.Token(c.address, id))
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: #%d", ErrTokenExists, id)
	}
	if err := c.store.insertToken(&entry.Token{Registry: c.address, ID: id, Owner: to}); err != nil {
		return err
	}
	r.Minted++
	return c.store.updateRegistry(r)
}

// Approve lets spender move token id once. Only the owner may approve; a
// zero spender clears the approval.
func (c *Contract) Approve(caller, spender common.Address, id uint64) error {
	t, err := ReadToken(c.store.view, c.address, id)
	if err != nil {
		return err
	}
	if caller != t.Owner {
		return ErrNotOwner
	}
	t.Approved = spender
	return c.store.updateToken(t)
}

// TransferFrom moves token id from one owner to another. The operator must
// be the owner or the approved account. Any approval is cleared.
func (c *Contract) TransferFrom(operator, from, to common.Address, id uint64) error {
	t, err := ReadToken(c.store.view, c.address, id)
	if err != nil {
		return err
	}
	if t.Owner != from {
		return fmt.Errorf("%w: #%d held by %s", ErrWrongOwner, id, t.Owner.Hex())
	}
	if operator != t.Owner && (!t.HasApproval() || operator != t.Approved) {
		return ErrNotAuthorized
	}
	t.Owner = to
	t.Approved = common.Address{}
	return c.store.updateToken(t)
}
