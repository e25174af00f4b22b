// Package payment implements the Payment transaction, a direct transfer of
// coins between two accounts.
package payment

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypePayment, func() tx.Transaction {
		return &Payment{BaseTx: *tx.NewBaseTx(tx.TypePayment, common.Address{})}
	})
}

// Payment moves Amount from Account to Destination. The destination
// account is created on first credit.
type Payment struct {
	tx.BaseTx

	// Amount is the amount to deliver (required)
	Amount amount.Amount `json:"Amount"`

	// Destination is the account receiving the payment (required)
	Destination common.Address `json:"Destination"`
}

// NewPayment creates a new Payment transaction
func NewPayment(account, destination common.Address, amt amount.Amount) *Payment {
	return &Payment{
		BaseTx:      *tx.NewBaseTx(tx.TypePayment, account),
		Amount:      amt,
		Destination: destination,
	}
}

// TxType returns the transaction type
func (p *Payment) TxType() tx.Type {
	return tx.TypePayment
}

// Validate validates the Payment transaction
func (p *Payment) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Destination == (common.Address{}) {
		return errors.New("temDST_NEEDED: Destination is required")
	}
	if p.Destination == p.Account {
		return errors.New("temDST_IS_SRC: cannot pay yourself")
	}
	if p.Amount.IsZero() {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Apply moves the funds. Registries and escrows cannot be paid directly.
func (p *Payment) Apply(ctx *tx.ApplyContext) tx.Result {
	contract, err := ledger.IsContract(ctx.View, p.Destination)
	if err != nil {
		ctx.Logger.Error("destination lookup failed", zap.Error(err))
		return tx.TefINTERNAL
	}
	if contract {
		return tx.TecNO_PERMISSION
	}

	err = ctx.Accounts.Transfer(p.Account, p.Destination, p.Amount)
	switch {
	case errors.Is(err, ledger.ErrUnfunded):
		return tx.TecUNFUNDED_PAYMENT
	case err != nil:
		ctx.Logger.Error("payment transfer failed", zap.Error(err))
		return tx.TefINTERNAL
	}
	ctx.SetDelivered(p.Amount)
	return tx.TesSUCCESS
}
