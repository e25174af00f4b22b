package nftoken

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
)

func init() {
	tx.Register(tx.TypeTokenApprove, func() tx.Transaction {
		return &TokenApprove{BaseTx: *tx.NewBaseTx(tx.TypeTokenApprove, common.Address{})}
	})
}

// TokenApprove authorizes Spender to transfer one token on the owner's
// behalf. A zero Spender revokes the current approval.
type TokenApprove struct {
	tx.BaseTx

	// Registry is the registry address (required)
	Registry common.Address `json:"Registry"`

	// TokenID is the token to approve (required)
	TokenID uint64 `json:"TokenID"`

	// Spender is the approved account (optional)
	Spender common.Address `json:"Spender,omitempty"`
}

// NewTokenApprove creates a new TokenApprove transaction
func NewTokenApprove(account, registry common.Address, id uint64, spender common.Address) *TokenApprove {
	return &TokenApprove{
		BaseTx:   *tx.NewBaseTx(tx.TypeTokenApprove, account),
		Registry: registry,
		TokenID:  id,
		Spender:  spender,
	}
}

// TxType returns the transaction type
func (a *TokenApprove) TxType() tx.Type {
	return tx.TypeTokenApprove
}

// Validate validates the TokenApprove transaction
func (a *TokenApprove) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.Registry == (common.Address{}) {
		return errors.New("temMALFORMED: Registry is required")
	}
	if a.Spender == a.Account {
		return errors.New("temDST_IS_SRC: cannot approve yourself")
	}
	return nil
}

// Apply records the approval
func (a *TokenApprove) Apply(ctx *tx.ApplyContext) tx.Result {
	return ResultFor(NewStore(ctx.View).Contract(a.Registry).Approve(a.Account, a.Spender, a.TokenID))
}
