package tx

import (
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Metadata describes what an applied transaction did.
type Metadata struct {
	TransactionResult Result

	// Delivered is the value that reached its final recipient, when the
	// transaction moves value (payments, purchases).
	Delivered *amount.Amount

	// Created is the address of an account the transaction deployed
	// (registries, escrows). Zero otherwise.
	Created common.Address

	// Affected is the number of ledger entries the transaction touched.
	Affected int
}

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// View is the sandbox the transaction writes into. It is committed only
	// when Apply returns tesSUCCESS.
	View ledger.View

	// Accounts moves balances on View
	Accounts *ledger.Accounts

	// Account is the submitting account
	Account common.Address

	// Sequence is the account sequence this transaction consumes
	Sequence uint64

	// TxHash is the hash of the current transaction
	TxHash [32]byte

	// CloseTime is the engine clock reading for this transaction
	CloseTime time.Time

	// Metadata allows transactions to set Delivered
	Metadata *Metadata

	Logger *zap.Logger
}

// ContractAddress returns the address a contract deployed by this
// transaction lives at. It is unique per account and sequence.
func (ctx *ApplyContext) ContractAddress() common.Address {
	return crypto.CreateAddress(ctx.Account, ctx.Sequence)
}

// SetDelivered records the delivered amount in the metadata.
func (ctx *ApplyContext) SetDelivered(a amount.Amount) {
	ctx.Metadata.Delivered = &a
}
