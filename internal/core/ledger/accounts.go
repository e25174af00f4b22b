package ledger

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUnfunded is returned when an account cannot cover a debit.
var ErrUnfunded = errors.New("insufficient account balance")

// ReadAccount returns the account root for addr. A missing account reads as
// a zero balance with sequence zero and found=false.
func ReadAccount(v ReadView, addr common.Address) (root *entry.AccountRoot, found bool, err error) {
	data, err := v.Read(keylet.Account(addr))
	if errors.Is(err, ErrNotFound) {
		return &entry.AccountRoot{Address: addr}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	root = &entry.AccountRoot{}
	if err := entry.Decode(data, root); err != nil {
		return nil, false, err
	}
	return root, true, nil
}

// BalanceOf returns the balance of addr, zero for unknown accounts.
func BalanceOf(v ReadView, addr common.Address) (amount.Amount, error) {
	root, _, err := ReadAccount(v, addr)
	if err != nil {
		return 0, err
	}
	return root.Balance, nil
}

// IsContract reports whether addr is a deployed registry or escrow. Their
// balances are only moved by their own transactors.
func IsContract(v ReadView, addr common.Address) (bool, error) {
	for _, k := range []keylet.Keylet{keylet.Escrow(addr), keylet.Registry(addr)} {
		found, err := v.Exists(k)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// Accounts moves balances on a mutable view.
type Accounts struct {
	view View
}

// NewAccounts wraps a view with balance helpers.
func NewAccounts(v View) *Accounts {
	return &Accounts{view: v}
}

// Balance returns the balance of addr.
func (a *Accounts) Balance(addr common.Address) (amount.Amount, error) {
	return BalanceOf(a.view, addr)
}

// Root returns the account root for addr, zero-valued when missing.
func (a *Accounts) Root(addr common.Address) (*entry.AccountRoot, error) {
	root, _, err := ReadAccount(a.view, addr)
	return root, err
}

// Exists reports whether an account root has been created for addr.
func (a *Accounts) Exists(addr common.Address) (bool, error) {
	return a.view.Exists(keylet.Account(addr))
}

// Put writes root, creating the account if needed.
func (a *Accounts) Put(root *entry.AccountRoot) error {
	data, err := entry.Encode(root)
	if err != nil {
		return err
	}
	k := keylet.Account(root.Address)
	exists, err := a.view.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return a.view.Update(k, data)
	}
	return a.view.Insert(k, data)
}

// Credit adds amt to addr, creating the account on first credit.
func (a *Accounts) Credit(addr common.Address, amt amount.Amount) error {
	root, err := a.Root(addr)
	if err != nil {
		return err
	}
	balance, err := root.Balance.Add(amt)
	if err != nil {
		return fmt.Errorf("credit %s: %w", addr.Hex(), err)
	}
	root.Balance = balance
	return a.Put(root)
}

// Debit removes amt from addr, failing with ErrUnfunded when the balance is
// too small.
func (a *Accounts) Debit(addr common.Address, amt amount.Amount) error {
	root, err := a.Root(addr)
	if err != nil {
		return err
	}
	if root.Balance < amt {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrUnfunded, addr.Hex(), root.Balance, amt)
	}
	root.Balance -= amt
	return a.Put(root)
}

// Transfer moves amt from one account to another. A zero amount is a no-op.
func (a *Accounts) Transfer(from, to common.Address, amt amount.Amount) error {
	if amt == 0 {
		return nil
	}
	if from == to {
		balance, err := a.Balance(from)
		if err != nil {
			return err
		}
		if balance < amt {
			return fmt.Errorf("%w: %s holds %s, needs %s", ErrUnfunded, from.Hex(), balance, amt)
		}
		return nil
	}
	if err := a.Debit(from, amt); err != nil {
		return err
	}
	return a.Credit(to, amt)
}

// Sequence returns the next transaction sequence of addr.
func (a *Accounts) Sequence(addr common.Address) (uint64, error) {
	root, err := a.Root(addr)
	if err != nil {
		return 0, err
	}
	return root.Sequence, nil
}

// BumpSequence increments the sequence of addr and returns the value it had
// before the increment.
func (a *Accounts) BumpSequence(addr common.Address) (uint64, error) {
	root, err := a.Root(addr)
	if err != nil {
		return 0, err
	}
	seq := root.Sequence
	root.Sequence++
	return seq, a.Put(root)
}
