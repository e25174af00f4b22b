package escrow

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeEscrowCreate, func() tx.Transaction {
		return &EscrowCreate{BaseTx: *tx.NewBaseTx(tx.TypeEscrowCreate, common.Address{})}
	})
}

// EscrowCreate deploys a sale escrow for one token.
type EscrowCreate struct {
	tx.BaseTx

	// Registry holds the token for sale (required)
	Registry common.Address `json:"Registry"`

	// TokenID is the token for sale
	TokenID uint64 `json:"TokenID"`

	// PurchasePrice is the total sale price (required)
	PurchasePrice amount.Amount `json:"PurchasePrice"`

	// EarnestAmount is the expected deposit, at most PurchasePrice
	EarnestAmount amount.Amount `json:"EarnestAmount"`

	// Seller owns the token and receives the proceeds (optional, defaults
	// to Account)
	Seller common.Address `json:"Seller,omitempty"`

	// Creator receives the royalty (required)
	Creator common.Address `json:"Creator"`

	// CreatorShare is the royalty in percent (optional, defaults to
	// DefaultCreatorShare)
	CreatorShare *uint8 `json:"CreatorShare,omitempty"`

	// EnforceBuyer binds the sale to the first depositor (optional,
	// defaults to true)
	EnforceBuyer *bool `json:"EnforceBuyer,omitempty"`

	// RequireEarnest refuses finalization until the earnest is held
	RequireEarnest bool `json:"RequireEarnest,omitempty"`
}

// NewEscrowCreate creates a new EscrowCreate transaction
func NewEscrowCreate(account, registry common.Address, id uint64, price, earnest amount.Amount, creator common.Address) *EscrowCreate {
	return &EscrowCreate{
		BaseTx:        *tx.NewBaseTx(tx.TypeEscrowCreate, account),
		Registry:      registry,
		TokenID:       id,
		PurchasePrice: price,
		EarnestAmount: earnest,
		Creator:       creator,
	}
}

// TxType returns the transaction type
func (e *EscrowCreate) TxType() tx.Type {
	return tx.TypeEscrowCreate
}

// Validate validates the EscrowCreate transaction
func (e *EscrowCreate) Validate() error {
	if err := e.BaseTx.Validate(); err != nil {
		return err
	}
	if e.Registry == (common.Address{}) {
		return errors.New("temMALFORMED: Registry is required")
	}
	if e.Creator == (common.Address{}) {
		return errors.New("temDST_NEEDED: Creator is required")
	}
	if e.PurchasePrice.IsZero() {
		return errors.New("temBAD_AMOUNT: PurchasePrice must be positive")
	}
	if e.EarnestAmount > e.PurchasePrice {
		return errors.New("temBAD_AMOUNT: EarnestAmount exceeds PurchasePrice")
	}
	if e.share() > 100 {
		return fmt.Errorf("temMALFORMED: CreatorShare %d above 100", e.share())
	}
	return nil
}

func (e *EscrowCreate) seller() common.Address {
	if e.Seller == (common.Address{}) {
		return e.Account
	}
	return e.Seller
}

func (e *EscrowCreate) share() uint8 {
	if e.CreatorShare == nil {
		return DefaultCreatorShare
	}
	return *e.CreatorShare
}

func (e *EscrowCreate) enforceBuyer() bool {
	return e.EnforceBuyer == nil || *e.EnforceBuyer
}

// Apply deploys the escrow at the contract address of this transaction
func (e *EscrowCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	registry := nftoken.NewStore(ctx.View).Contract(e.Registry)
	owner, err := registry.OwnerOf(e.TokenID)
	if err != nil {
		return nftoken.ResultFor(err)
	}
	if owner != e.seller() {
		return tx.TecNO_PERMISSION
	}

	state := &entry.Escrow{
		Address:        ctx.ContractAddress(),
		Owner:          e.Account,
		Registry:       e.Registry,
		TokenID:        e.TokenID,
		PurchasePrice:  e.PurchasePrice,
		EarnestAmount:  e.EarnestAmount,
		Seller:         e.seller(),
		Creator:        e.Creator,
		CreatorShare:   e.share(),
		EnforceBuyer:   e.enforceBuyer(),
		RequireEarnest: e.RequireEarnest,
	}
	err = insertEscrow(ctx.View, state)
	if errors.Is(err, ledger.ErrExists) {
		return tx.TecDUPLICATE
	}
	if err != nil {
		ctx.Logger.Error("escrow insert failed", zap.Error(err))
		return tx.TefINTERNAL
	}

	ctx.Metadata.Created = state.Address
	ctx.Logger.Info("escrow created",
		zap.Stringer("escrow", state.Address),
		zap.Stringer("registry", state.Registry),
		zap.Uint64("token", state.TokenID),
		zap.Stringer("price", state.PurchasePrice),
		zap.Uint8("creator_share", state.CreatorShare))
	return tx.TesSUCCESS
}
