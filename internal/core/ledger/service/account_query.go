package service

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/ethereum/go-ethereum/common"
)

// AccountInfoResult contains account information from the ledger
type AccountInfoResult struct {
	Account  common.Address
	Balance  amount.Amount
	Sequence uint64

	// Exists is false for accounts that never received funds. Balance and
	// Sequence are zero then.
	Exists bool
}

// GetAccountInfo retrieves account information from the ledger
func (s *Service) GetAccountInfo(addr common.Address) (*AccountInfoResult, error) {
	l, err := s.getLedger()
	if err != nil {
		return nil, err
	}
	root, found, err := ledger.ReadAccount(l, addr)
	if err != nil {
		return nil, err
	}
	res := &AccountInfoResult{Account: addr, Exists: found}
	if found {
		res.Balance = root.Balance
		res.Sequence = root.Sequence
	}
	return res, nil
}

// GetBalance returns the committed balance of addr
func (s *Service) GetBalance(addr common.Address) (amount.Amount, error) {
	l, err := s.getLedger()
	if err != nil {
		return 0, err
	}
	return ledger.BalanceOf(l, addr)
}
