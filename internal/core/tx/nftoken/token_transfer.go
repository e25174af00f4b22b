package nftoken

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
)

func init() {
	tx.Register(tx.TypeTokenTransfer, func() tx.Transaction {
		return &TokenTransfer{BaseTx: *tx.NewBaseTx(tx.TypeTokenTransfer, common.Address{})}
	})
}

// TokenTransfer moves a token from Owner to Destination. Account must be
// the owner or the approved spender.
type TokenTransfer struct {
	tx.BaseTx

	// Registry is the registry address (required)
	Registry common.Address `json:"Registry"`

	// TokenID is the token to move (required)
	TokenID uint64 `json:"TokenID"`

	// Owner is the current holder (optional, defaults to Account)
	Owner common.Address `json:"Owner,omitempty"`

	// Destination receives the token (required)
	Destination common.Address `json:"Destination"`
}

// NewTokenTransfer creates a new TokenTransfer transaction
func NewTokenTransfer(account, registry common.Address, id uint64, destination common.Address) *TokenTransfer {
	return &TokenTransfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeTokenTransfer, account),
		Registry:    registry,
		TokenID:     id,
		Destination: destination,
	}
}

// TxType returns the transaction type
func (t *TokenTransfer) TxType() tx.Type {
	return tx.TypeTokenTransfer
}

// Validate validates the TokenTransfer transaction
func (t *TokenTransfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Registry == (common.Address{}) {
		return errors.New("temMALFORMED: Registry is required")
	}
	if t.Destination == (common.Address{}) {
		return errors.New("temDST_NEEDED: Destination is required")
	}
	if t.Destination == t.owner() {
		return errors.New("temDST_IS_SRC: token already held by Destination")
	}
	return nil
}

func (t *TokenTransfer) owner() common.Address {
	if t.Owner == (common.Address{}) {
		return t.Account
	}
	return t.Owner
}

// Apply moves the token
func (t *TokenTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	contract := NewStore(ctx.View).Contract(t.Registry)
	return ResultFor(contract.TransferFrom(t.Account, t.owner(), t.Destination, t.TokenID))
}
