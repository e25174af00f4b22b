package service

import (
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/tx/escrow"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/ethereum/go-ethereum/common"
)

// EscrowInfoResult describes a sale escrow and the funds it holds
type EscrowInfoResult struct {
	Address        common.Address
	Registry       common.Address
	TokenID        uint64
	Seller         common.Address
	Creator        common.Address
	PurchasePrice  amount.Amount
	EarnestAmount  amount.Amount
	CreatorShare   uint8
	EnforceBuyer   bool
	RequireEarnest bool

	// Buyer is zero until a buyer is bound or the sale completes
	Buyer     common.Address
	Completed bool

	// Balance is the amount currently held
	Balance amount.Amount

	// Approved reports whether the seller has authorized the escrow to move
	// the token
	Approved bool
}

// GetEscrowInfo retrieves the escrow deployed at addr
func (s *Service) GetEscrowInfo(addr common.Address) (*EscrowInfoResult, error) {
	l, err := s.getLedger()
	if err != nil {
		return nil, err
	}
	e, err := escrow.ReadEscrow(l, addr)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.BalanceOf(l, addr)
	if err != nil {
		return nil, err
	}

	res := &EscrowInfoResult{
		Address:        e.Address,
		Registry:       e.Registry,
		TokenID:        e.TokenID,
		Seller:         e.Seller,
		Creator:        e.Creator,
		PurchasePrice:  e.PurchasePrice,
		EarnestAmount:  e.EarnestAmount,
		CreatorShare:   e.CreatorShare,
		EnforceBuyer:   e.EnforceBuyer,
		RequireEarnest: e.RequireEarnest,
		Buyer:          e.Buyer,
		Completed:      e.Completed,
		Balance:        balance,
	}

	// The token may have been burned or moved by a registry the escrow
	// does not control; that only means no approval.
	if t, err := nftoken.ReadToken(l, e.Registry, e.TokenID); err == nil {
		res.Approved = t.Approved == e.Address
	}
	return res, nil
}

// GetEscrowBalance returns the funds currently held by the escrow at addr
func (s *Service) GetEscrowBalance(addr common.Address) (amount.Amount, error) {
	info, err := s.GetEscrowInfo(addr)
	if err != nil {
		return 0, err
	}
	return info.Balance, nil
}
