package testing

import (
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
)

// TxResult represents the result of submitting a transaction.
type TxResult struct {
	// Code is the transaction engine result code (e.g., tesSUCCESS).
	Code tx.Result

	// Success indicates whether the transaction was applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	Hash      common.Hash
	Sequence  uint64
	CloseTime time.Time

	// Created is the registry or escrow the transaction deployed.
	Created common.Address

	// Delivered is set when the transaction moved value.
	Delivered *amount.Amount
}

func newTxResult(res tx.ApplyResult) TxResult {
	r := TxResult{
		Code:      res.Result,
		Success:   res.Applied,
		Message:   res.Message,
		Hash:      common.Hash(res.Hash),
		Sequence:  res.Sequence,
		CloseTime: res.CloseTime,
	}
	if res.Metadata != nil {
		r.Created = res.Metadata.Created
		r.Delivered = res.Metadata.Delivered
	}
	return r
}

// IsSuccess returns true if the transaction succeeded.
func (r TxResult) IsSuccess() bool {
	return r.Code == tx.TesSUCCESS
}

// IsClaimed returns true for tec codes: the transaction was refused while
// applying and changed nothing.
func (r TxResult) IsClaimed() bool {
	return r.Code.IsTec()
}

// IsMalformed returns true for tem codes.
func (r TxResult) IsMalformed() bool {
	return r.Code.IsTem()
}

// String returns a string representation of the result.
func (r TxResult) String() string {
	if r.Message != "" {
		return r.Code.String() + ": " + r.Message
	}
	return r.Code.String()
}
