package service

import (
	"context"

	"github.com/LeJamon/goNFTize/internal/storage/relationaldb"
	"github.com/ethereum/go-ethereum/common"
)

// AccountTxResult is a page of transactions that touched an address
type AccountTxResult struct {
	Address      common.Address
	Transactions []relationaldb.TransactionRecord
	Limit        int
	Offset       int
}

// GetTransaction retrieves an applied transaction by hash
func (s *Service) GetTransaction(ctx context.Context, hash common.Hash) (*relationaldb.TransactionRecord, error) {
	if s.config.History == nil {
		return nil, ErrHistoryDisabled
	}
	return s.config.History.GetTransaction(ctx, hash)
}

// GetAccountTransactions retrieves transactions submitted by addr or acting
// on it (a registry or escrow), oldest first.
func (s *Service) GetAccountTransactions(ctx context.Context, addr common.Address, limit, offset int) (*AccountTxResult, error) {
	if s.config.History == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = relationaldb.DefaultLimit
	}
	records, err := s.config.History.History(ctx, relationaldb.HistoryQuery{
		Address: addr,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	return &AccountTxResult{
		Address:      addr,
		Transactions: records,
		Limit:        limit,
		Offset:       offset,
	}, nil
}
