package nftoken

import (
	"errors"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
)

func init() {
	tx.Register(tx.TypeTokenMint, func() tx.Transaction {
		return &TokenMint{BaseTx: *tx.NewBaseTx(tx.TypeTokenMint, common.Address{})}
	})
}

// TokenMint mints a new token in a registry issued by Account.
type TokenMint struct {
	tx.BaseTx

	// Registry is the registry address (required)
	Registry common.Address `json:"Registry"`

	// TokenID is the id to mint (required, unique per registry)
	TokenID uint64 `json:"TokenID"`

	// Destination receives the token (optional, defaults to Account)
	Destination common.Address `json:"Destination,omitempty"`
}

// NewTokenMint creates a new TokenMint transaction
func NewTokenMint(account, registry common.Address, id uint64) *TokenMint {
	return &TokenMint{
		BaseTx:   *tx.NewBaseTx(tx.TypeTokenMint, account),
		Registry: registry,
		TokenID:  id,
	}
}

// TxType returns the transaction type
func (m *TokenMint) TxType() tx.Type {
	return tx.TypeTokenMint
}

// Validate validates the TokenMint transaction
func (m *TokenMint) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	if m.Registry == (common.Address{}) {
		return errors.New("temMALFORMED: Registry is required")
	}
	return nil
}

// Apply mints the token
func (m *TokenMint) Apply(ctx *tx.ApplyContext) tx.Result {
	to := m.Destination
	if to == (common.Address{}) {
		to = m.Account
	}
	return ResultFor(NewStore(ctx.View).Contract(m.Registry).Mint(m.Account, to, m.TokenID))
}
