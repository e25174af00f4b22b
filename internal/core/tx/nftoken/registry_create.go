package nftoken

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func init() {
	tx.Register(tx.TypeRegistryCreate, func() tx.Transaction {
		return &RegistryCreate{BaseTx: *tx.NewBaseTx(tx.TypeRegistryCreate, common.Address{})}
	})
}

// MaxNameLength bounds the registry name.
const MaxNameLength = 64

// RegistryCreate deploys a registry issued by Account. The listed token ids
// are minted to Account straight away.
type RegistryCreate struct {
	tx.BaseTx

	// Name is a display name (required)
	Name string `json:"Name"`

	// TokenIDs are minted to the deployer (optional)
	TokenIDs []uint64 `json:"TokenIDs,omitempty"`
}

// NewRegistryCreate creates a new RegistryCreate transaction
func NewRegistryCreate(account common.Address, name string, ids ...uint64) *RegistryCreate {
	return &RegistryCreate{
		BaseTx:   *tx.NewBaseTx(tx.TypeRegistryCreate, account),
		Name:     name,
		TokenIDs: ids,
	}
}

// TxType returns the transaction type
func (r *RegistryCreate) TxType() tx.Type {
	return tx.TypeRegistryCreate
}

// Validate validates the RegistryCreate transaction
func (r *RegistryCreate) Validate() error {
	if err := r.BaseTx.Validate(); err != nil {
		return err
	}
	if r.Name == "" {
		return errors.New("temMALFORMED: Name is required")
	}
	if len(r.Name) > MaxNameLength {
		return fmt.Errorf("temMALFORMED: Name longer than %d bytes", MaxNameLength)
	}
	seen := make(map[uint64]bool, len(r.TokenIDs))
	for _, id := range r.TokenIDs {
		if seen[id] {
			return fmt.Errorf("temMALFORMED: token id %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

// Apply deploys the registry at the contract address of this transaction
func (r *RegistryCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	addr := ctx.ContractAddress()
	store := NewStore(ctx.View)

	err := store.CreateRegistry(&entry.Registry{
		Address: addr,
		Issuer:  r.Account,
		Name:    r.Name,
	})
	if errors.Is(err, ledger.ErrExists) {
		return tx.TecDUPLICATE
	}
	if err != nil {
		ctx.Logger.Error("registry create failed", zap.Error(err))
		return tx.TefINTERNAL
	}

	contract := store.Contract(addr)
	for _, id := range r.TokenIDs {
		if err := contract.Mint(r.Account, r.Account, id); err != nil {
			return ResultFor(err)
		}
	}

	ctx.Metadata.Created = addr
	ctx.Logger.Info("registry deployed",
		zap.Stringer("registry", addr),
		zap.String("name", r.Name),
		zap.Int("minted", len(r.TokenIDs)))
	return tx.TesSUCCESS
}
