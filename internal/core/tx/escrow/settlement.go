// Package escrow implements single-asset sale escrows: a buyer deposits
// earnest money, then pays the rest, and finalization hands the token to
// the buyer while paying the creator royalty and the seller proceeds.
package escrow

//go:generate mockgen -source=settlement.go -destination=mocks/mock_settlement.go -package=mocks

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultCreatorShare is the creator royalty, in percent of the purchase
// price, used when an escrow does not set one.
const DefaultCreatorShare uint8 = 30

var (
	// ErrInvalidState is returned by every state-changing call after the
	// sale has completed.
	ErrInvalidState = errors.New("escrow: sale already completed")

	// ErrInsufficientFunds is returned when held plus attached funds do not
	// reach the purchase price, or the earnest was required but not held.
	ErrInsufficientFunds = errors.New("escrow: insufficient funds for purchase")

	// ErrTransferRejected is returned when the registry refuses to move the
	// token to the buyer.
	ErrTransferRejected = errors.New("escrow: asset transfer rejected")

	// ErrNotBuyer is returned when buyer identity is enforced and the
	// caller is not the bound buyer.
	ErrNotBuyer = errors.New("escrow: caller is not the buyer")

	// ErrUnfunded is returned when the caller cannot cover the attached
	// amount.
	ErrUnfunded = errors.New("escrow: caller balance below attached amount")
)

// AssetRegistry is the part of the token registry a settlement needs.
type AssetRegistry interface {
	OwnerOf(id uint64) (common.Address, error)
	GetApproved(id uint64) (common.Address, error)
	TransferFrom(operator, from, to common.Address, id uint64) error
}

// Funds moves coins between accounts.
type Funds interface {
	Balance(addr common.Address) (amount.Amount, error)
	Transfer(from, to common.Address, amt amount.Amount) error
}

// Payout is how a purchase distributed the held funds.
type Payout struct {
	Creator amount.Amount
	Seller  amount.Amount

	// Refund is the amount received above the purchase price, returned to
	// the buyer.
	Refund amount.Amount
}

// Settlement runs the sale state machine of one escrow. The escrow entry is
// only modified once every effect of an operation has succeeded; callers
// run it inside a sandbox so the fund and token movements roll back with
// it.
type Settlement struct {
	state    *entry.Escrow
	registry AssetRegistry
	funds    Funds
}

// NewSettlement binds an escrow entry to its registry and a funds mover.
func NewSettlement(state *entry.Escrow, registry AssetRegistry, funds Funds) *Settlement {
	return &Settlement{state: state, registry: registry, funds: funds}
}

// State returns the escrow entry
func (s *Settlement) State() *entry.Escrow {
	return s.state
}

// Completed reports whether the sale is over
func (s *Settlement) Completed() bool {
	return s.state.Completed
}

// Balance returns the funds currently held by the escrow.
func (s *Settlement) Balance() (amount.Amount, error) {
	return s.funds.Balance(s.state.Address)
}

// Approved reports whether the seller has authorized the escrow to move
// the token.
func (s *Settlement) Approved() (bool, error) {
	spender, err := s.registry.GetApproved(s.state.TokenID)
	if err != nil {
		return false, err
	}
	return spender == s.state.Address, nil
}

// Deposit moves amt from caller into the escrow.
func (s *Settlement) Deposit(caller common.Address, amt amount.Amount) error {
	if s.state.Completed {
		return ErrInvalidState
	}
	if err := s.checkBuyer(caller); err != nil {
		return err
	}

	held, err := s.Balance()
	if err != nil {
		return err
	}
	if _, err := held.Add(amt); err != nil {
		return err
	}
	if err := s.pull(caller, amt); err != nil {
		return err
	}

	if s.state.EnforceBuyer && !s.state.HasBuyer() {
		s.state.Buyer = caller
	}
	return nil
}

// Purchase attaches amt and finalizes the sale: the token moves to caller,
// the creator and seller are paid, anything above the price is refunded
// and the escrow is left empty and completed.
func (s *Settlement) Purchase(caller common.Address, amt amount.Amount) (Payout, error) {
	if s.state.Completed {
		return Payout{}, ErrInvalidState
	}
	if err := s.checkBuyer(caller); err != nil {
		return Payout{}, err
	}

	held, err := s.Balance()
	if err != nil {
		return Payout{}, err
	}
	if s.state.RequireEarnest && held < s.state.EarnestAmount {
		return Payout{}, fmt.Errorf("%w: earnest %s not deposited, holding %s",
			ErrInsufficientFunds, s.state.EarnestAmount, held)
	}
	total, err := held.Add(amt)
	if err != nil {
		return Payout{}, err
	}
	if total < s.state.PurchasePrice {
		return Payout{}, fmt.Errorf("%w: have %s, price %s",
			ErrInsufficientFunds, total, s.state.PurchasePrice)
	}

	payout, err := planPayout(s.state.PurchasePrice, s.state.CreatorShare, total)
	if err != nil {
		return Payout{}, err
	}

	// The token moves first. A refusal leaves every balance untouched.
	err = s.registry.TransferFrom(s.state.Address, s.state.Seller, caller, s.state.TokenID)
	if err != nil {
		return Payout{}, fmt.Errorf("%w: %v", ErrTransferRejected, err)
	}

	if err := s.pull(caller, amt); err != nil {
		return Payout{}, err
	}
	if err := s.funds.Transfer(s.state.Address, s.state.Creator, payout.Creator); err != nil {
		return Payout{}, fmt.Errorf("pay creator: %w", err)
	}
	if err := s.funds.Transfer(s.state.Address, s.state.Seller, payout.Seller); err != nil {
		return Payout{}, fmt.Errorf("pay seller: %w", err)
	}
	if err := s.funds.Transfer(s.state.Address, caller, payout.Refund); err != nil {
		return Payout{}, fmt.Errorf("refund buyer: %w", err)
	}

	s.state.Buyer = caller
	s.state.Completed = true
	return payout, nil
}

// pull moves amt from caller into the escrow after checking caller can
// cover it.
func (s *Settlement) pull(caller common.Address, amt amount.Amount) error {
	if amt.IsZero() {
		return nil
	}
	balance, err := s.funds.Balance(caller)
	if err != nil {
		return err
	}
	if balance < amt {
		return fmt.Errorf("%w: %s holds %s, attached %s", ErrUnfunded, caller.Hex(), balance, amt)
	}
	return s.funds.Transfer(caller, s.state.Address, amt)
}

func (s *Settlement) checkBuyer(caller common.Address) error {
	if caller == s.state.Seller {
		return fmt.Errorf("%w: seller cannot buy their own asset", ErrNotBuyer)
	}
	if s.state.EnforceBuyer && s.state.HasBuyer() && caller != s.state.Buyer {
		return fmt.Errorf("%w: bound to %s", ErrNotBuyer, s.state.Buyer.Hex())
	}
	return nil
}

// planPayout splits price between creator and seller and refunds the rest
// of total. The creator share rounds down.
func planPayout(price amount.Amount, share uint8, total amount.Amount) (Payout, error) {
	creator, seller, err := price.Split(share)
	if err != nil {
		return Payout{}, err
	}
	refund, err := total.Sub(price)
	if err != nil {
		return Payout{}, err
	}
	return Payout{Creator: creator, Seller: seller, Refund: refund}, nil
}
