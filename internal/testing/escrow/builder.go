// Package escrow provides fluent builders for sale escrow transactions used
// in tests.
package escrow

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	escrowtx "github.com/LeJamon/goNFTize/internal/core/tx/escrow"
	"github.com/LeJamon/goNFTize/internal/testing"
	"github.com/ethereum/go-ethereum/common"
)

// EscrowCreateBuilder provides a fluent interface for building EscrowCreate transactions.
type EscrowCreateBuilder struct {
	from           *testing.Account
	registry       common.Address
	tokenID        uint64
	price          amount.Amount
	earnest        amount.Amount
	creator        *testing.Account
	seller         *testing.Account
	share          *uint8
	enforceBuyer   *bool
	requireEarnest bool
	sequence       *uint64
}

// EscrowCreate creates a new EscrowCreateBuilder selling token id of
// registry for price. The creator receives the royalty.
func EscrowCreate(from *testing.Account, registry common.Address, id uint64, price amount.Amount, creator *testing.Account) *EscrowCreateBuilder {
	return &EscrowCreateBuilder{
		from:     from,
		registry: registry,
		tokenID:  id,
		price:    price,
		creator:  creator,
	}
}

// Earnest sets the expected earnest deposit.
func (b *EscrowCreateBuilder) Earnest(amt amount.Amount) *EscrowCreateBuilder {
	b.earnest = amt
	return b
}

// Seller sets a seller other than the submitting account.
func (b *EscrowCreateBuilder) Seller(seller *testing.Account) *EscrowCreateBuilder {
	b.seller = seller
	return b
}

// Share sets the creator royalty in percent.
func (b *EscrowCreateBuilder) Share(percent uint8) *EscrowCreateBuilder {
	b.share = &percent
	return b
}

// EnforceBuyer sets whether the first depositor becomes the only buyer.
func (b *EscrowCreateBuilder) EnforceBuyer(enforce bool) *EscrowCreateBuilder {
	b.enforceBuyer = &enforce
	return b
}

// RequireEarnest refuses the purchase until the earnest is held.
func (b *EscrowCreateBuilder) RequireEarnest() *EscrowCreateBuilder {
	b.requireEarnest = true
	return b
}

// Sequence sets the sequence number explicitly.
func (b *EscrowCreateBuilder) Sequence(seq uint64) *EscrowCreateBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the EscrowCreate transaction.
func (b *EscrowCreateBuilder) Build() tx.Transaction {
	e := escrowtx.NewEscrowCreate(b.from.Address, b.registry, b.tokenID, b.price, b.earnest, b.creator.Address)
	if b.seller != nil {
		e.Seller = b.seller.Address
	}
	e.CreatorShare = b.share
	e.EnforceBuyer = b.enforceBuyer
	e.RequireEarnest = b.requireEarnest
	if b.sequence != nil {
		e.WithSequence(*b.sequence)
	}
	return e
}

// EscrowDepositBuilder provides a fluent interface for building EscrowDeposit transactions.
type EscrowDepositBuilder struct {
	from     *testing.Account
	escrow   common.Address
	amount   amount.Amount
	sequence *uint64
}

// Deposit creates a new EscrowDepositBuilder.
func Deposit(from *testing.Account, escrow common.Address, amt amount.Amount) *EscrowDepositBuilder {
	return &EscrowDepositBuilder{from: from, escrow: escrow, amount: amt}
}

// Sequence sets the sequence number explicitly.
func (b *EscrowDepositBuilder) Sequence(seq uint64) *EscrowDepositBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the EscrowDeposit transaction.
func (b *EscrowDepositBuilder) Build() tx.Transaction {
	d := escrowtx.NewEscrowDeposit(b.from.Address, b.escrow, b.amount)
	if b.sequence != nil {
		d.WithSequence(*b.sequence)
	}
	return d
}

// EscrowPurchaseBuilder provides a fluent interface for building EscrowPurchase transactions.
type EscrowPurchaseBuilder struct {
	from     *testing.Account
	escrow   common.Address
	amount   amount.Amount
	sequence *uint64
}

// Purchase creates a new EscrowPurchaseBuilder attaching amt.
func Purchase(from *testing.Account, escrow common.Address, amt amount.Amount) *EscrowPurchaseBuilder {
	return &EscrowPurchaseBuilder{from: from, escrow: escrow, amount: amt}
}

// Sequence sets the sequence number explicitly.
func (b *EscrowPurchaseBuilder) Sequence(seq uint64) *EscrowPurchaseBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the EscrowPurchase transaction.
func (b *EscrowPurchaseBuilder) Build() tx.Transaction {
	p := escrowtx.NewEscrowPurchase(b.from.Address, b.escrow, b.amount)
	if b.sequence != nil {
		p.WithSequence(*b.sequence)
	}
	return p
}
