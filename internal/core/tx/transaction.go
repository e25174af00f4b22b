package tx

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("invalid amount")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the transaction in isolation, without reading state.
	// Errors may carry a result code prefix such as "temBAD_AMOUNT: ...".
	Validate() error
}

// Appliable is implemented by transaction types that can apply themselves to ledger state.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types
type Common struct {
	// Account is the submitting account
	Account         common.Address `json:"Account"`
	TransactionType string         `json:"TransactionType"`

	// Sequence is optional. When set it must equal the account's next
	// sequence or the transaction is rejected before applying.
	Sequence *uint64 `json:"Sequence,omitempty"`

	// Memo is free text recorded in transaction history
	Memo string `json:"Memo,omitempty"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account == (common.Address{}) {
		return errors.New("temBAD_SRC_ACCOUNT: Account is required")
	}
	if c.TransactionType == "" {
		return errors.New("temMALFORMED: TransactionType is required")
	}
	if _, ok := TypeFromName(c.TransactionType); !ok {
		return errors.New("temUNKNOWN: unknown TransactionType " + c.TransactionType)
	}
	return nil
}

// BaseTx is embedded by every concrete transaction type
type BaseTx struct {
	Common
	txType Type
}

// NewBaseTx creates a new base transaction of the given type
func NewBaseTx(txType Type, account common.Address) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the common fields
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// WithSequence pins the sequence the transaction must be applied at.
func (b *BaseTx) WithSequence(seq uint64) {
	b.Sequence = &seq
}
