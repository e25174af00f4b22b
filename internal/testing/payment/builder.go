// Package payment provides a fluent Payment builder for tests.
package payment

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/payment"
	"github.com/LeJamon/goNFTize/internal/testing"
)

// PaymentBuilder provides a fluent interface for building Payment transactions.
type PaymentBuilder struct {
	from     *testing.Account
	to       *testing.Account
	amount   amount.Amount
	memo     string
	sequence *uint64
}

// Pay creates a new PaymentBuilder moving amt from one account to another.
func Pay(from, to *testing.Account, amt amount.Amount) *PaymentBuilder {
	return &PaymentBuilder{
		from:   from,
		to:     to,
		amount: amt,
	}
}

// PayCoins is Pay with a whole number of coins.
func PayCoins(from, to *testing.Account, coins uint64) *PaymentBuilder {
	return Pay(from, to, testing.Coins(coins))
}

// Memo attaches free text recorded in history.
func (b *PaymentBuilder) Memo(memo string) *PaymentBuilder {
	b.memo = memo
	return b
}

// Sequence sets the sequence number explicitly.
func (b *PaymentBuilder) Sequence(seq uint64) *PaymentBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the Payment transaction.
func (b *PaymentBuilder) Build() tx.Transaction {
	p := payment.NewPayment(b.from.Address, b.to.Address, b.amount)
	p.Memo = b.memo
	if b.sequence != nil {
		p.WithSequence(*b.sequence)
	}
	return p
}
