package escrow

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeEscrowPurchase, func() tx.Transaction {
		return &EscrowPurchase{BaseTx: *tx.NewBaseTx(tx.TypeEscrowPurchase, common.Address{})}
	})
}

// EscrowPurchase attaches the remaining funds and finalizes the sale.
type EscrowPurchase struct {
	tx.BaseTx

	// Escrow is the escrow address (required)
	Escrow common.Address `json:"Escrow"`

	// Amount is the attached funds. Zero is allowed when the escrow
	// already holds the price.
	Amount amount.Amount `json:"Amount"`
}

// NewEscrowPurchase creates a new EscrowPurchase transaction
func NewEscrowPurchase(account, escrow common.Address, amt amount.Amount) *EscrowPurchase {
	return &EscrowPurchase{
		BaseTx: *tx.NewBaseTx(tx.TypeEscrowPurchase, account),
		Escrow: escrow,
		Amount: amt,
	}
}

// TxType returns the transaction type
func (p *EscrowPurchase) TxType() tx.Type {
	return tx.TypeEscrowPurchase
}

// Validate validates the EscrowPurchase transaction
func (p *EscrowPurchase) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Escrow == (common.Address{}) {
		return errors.New("temDST_NEEDED: Escrow is required")
	}
	return nil
}

// Apply finalizes the sale
func (p *EscrowPurchase) Apply(ctx *tx.ApplyContext) tx.Result {
	s, err := Open(ctx, p.Escrow)
	if err != nil {
		return ResultFor(err)
	}
	payout, err := s.Purchase(p.Account, p.Amount)
	if err != nil {
		ctx.Logger.Debug("purchase refused", zap.Stringer("escrow", p.Escrow), zap.Error(err))
		return ResultFor(err)
	}
	if err := updateEscrow(ctx.View, s.State()); err != nil {
		ctx.Logger.Error("escrow update failed", zap.Error(err))
		return tx.TefINTERNAL
	}

	state := s.State()
	ctx.SetDelivered(state.PurchasePrice)
	ctx.Logger.Info("escrow settled",
		zap.Stringer("escrow", state.Address),
		zap.Stringer("buyer", state.Buyer),
		zap.Stringer("creator_paid", payout.Creator),
		zap.Stringer("seller_paid", payout.Seller),
		zap.Stringer("refund", payout.Refund))
	return tx.TesSUCCESS
}
