package escrow

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeEscrowDeposit, func() tx.Transaction {
		return &EscrowDeposit{BaseTx: *tx.NewBaseTx(tx.TypeEscrowDeposit, common.Address{})}
	})
}

// EscrowDeposit adds earnest money to an escrow.
type EscrowDeposit struct {
	tx.BaseTx

	// Escrow is the escrow address (required)
	Escrow common.Address `json:"Escrow"`

	// Amount is the attached funds (required, positive)
	Amount amount.Amount `json:"Amount"`
}

// NewEscrowDeposit creates a new EscrowDeposit transaction
func NewEscrowDeposit(account, escrow common.Address, amt amount.Amount) *EscrowDeposit {
	return &EscrowDeposit{
		BaseTx: *tx.NewBaseTx(tx.TypeEscrowDeposit, account),
		Escrow: escrow,
		Amount: amt,
	}
}

// TxType returns the transaction type
func (d *EscrowDeposit) TxType() tx.Type {
	return tx.TypeEscrowDeposit
}

// Validate validates the EscrowDeposit transaction
func (d *EscrowDeposit) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.Escrow == (common.Address{}) {
		return errors.New("temDST_NEEDED: Escrow is required")
	}
	if d.Amount.IsZero() {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Apply moves the deposit into the escrow
func (d *EscrowDeposit) Apply(ctx *tx.ApplyContext) tx.Result {
	s, err := Open(ctx, d.Escrow)
	if err != nil {
		return ResultFor(err)
	}
	if err := s.Deposit(d.Account, d.Amount); err != nil {
		ctx.Logger.Debug("deposit refused", zap.Stringer("escrow", d.Escrow), zap.Error(err))
		return ResultFor(err)
	}
	if err := updateEscrow(ctx.View, s.State()); err != nil {
		ctx.Logger.Error("escrow update failed", zap.Error(err))
		return tx.TefINTERNAL
	}
	ctx.SetDelivered(d.Amount)
	return tx.TesSUCCESS
}
