package service

import (
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/ethereum/go-ethereum/common"
)

// RegistryInfoResult describes a deployed asset registry
type RegistryInfoResult struct {
	Address common.Address
	Issuer  common.Address
	Name    string
	Minted  uint64
}

// TokenInfoResult describes a single token
type TokenInfoResult struct {
	Registry common.Address
	ID       uint64
	Owner    common.Address

	// Approved is the zero address when no spender is approved
	Approved common.Address
}

// GetRegistryInfo retrieves the registry deployed at addr
func (s *Service) GetRegistryInfo(addr common.Address) (*RegistryInfoResult, error) {
	l, err := s.getLedger()
	if err != nil {
		return nil, err
	}
	r, err := nftoken.ReadRegistry(l, addr)
	if err != nil {
		return nil, err
	}
	return &RegistryInfoResult{
		Address: r.Address,
		Issuer:  r.Issuer,
		Name:    r.Name,
		Minted:  r.Minted,
	}, nil
}

// GetTokenInfo retrieves token id of the registry at registry
func (s *Service) GetTokenInfo(registry common.Address, id uint64) (*TokenInfoResult, error) {
	l, err := s.getLedger()
	if err != nil {
		return nil, err
	}
	t, err := nftoken.ReadToken(l, registry, id)
	if err != nil {
		return nil, err
	}
	return &TokenInfoResult{
		Registry: t.Registry,
		ID:       t.ID,
		Owner:    t.Owner,
		Approved: t.Approved,
	}, nil
}

// GetOwner returns the current owner of a token
func (s *Service) GetOwner(registry common.Address, id uint64) (common.Address, error) {
	info, err := s.GetTokenInfo(registry, id)
	if err != nil {
		return common.Address{}, err
	}
	return info.Owner, nil
}
