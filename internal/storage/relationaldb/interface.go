// Package relationaldb keeps the history of applied transactions in a SQL
// database (SQLite through modernc.org/sqlite, or PostgreSQL through
// lib/pq) so it can be queried by account or by escrow.
package relationaldb

import (
	"context"
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// TransactionRecord is one applied transaction.
type TransactionRecord struct {
	ID   uuid.UUID   `json:"id"`
	Hash common.Hash `json:"hash"`

	Account  common.Address `json:"account"`
	Sequence uint64         `json:"sequence"`
	Type     string         `json:"type"`
	Result   string         `json:"result"`

	// Subject is the escrow, registry or destination the transaction acted
	// on. Zero when there is none.
	Subject common.Address `json:"subject"`

	// Delivered is set for transactions that moved value
	Delivered *amount.Amount `json:"delivered,omitempty"`

	CloseTime time.Time `json:"close_time"`
	Memo      string    `json:"memo,omitempty"`

	// Raw is the JSON form of the transaction
	Raw []byte `json:"raw"`
}

// HistoryQuery selects records. Records match when the address is either
// the submitting account or the subject.
type HistoryQuery struct {
	Address common.Address
	Limit   int
	Offset  int
}

// Repository stores and reads transaction history.
type Repository interface {
	SaveTransaction(ctx context.Context, rec *TransactionRecord) error
	GetTransaction(ctx context.Context, hash common.Hash) (*TransactionRecord, error)
	History(ctx context.Context, q HistoryQuery) ([]TransactionRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
