package config

import (
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
)

// SaleConfig represents the [sale] section. Accounts are hex addresses or
// passphrases of derived accounts. Amounts are decimal strings in whole
// coins ("100", "0.5").
type SaleConfig struct {
	Seller  string `mapstructure:"seller"`
	Buyer   string `mapstructure:"buyer"`
	Creator string `mapstructure:"creator"`

	// Registry names the collection the seller deploys
	Registry string `mapstructure:"registry"`
	TokenID  uint64 `mapstructure:"token_id"`

	Price   string `mapstructure:"price"`
	Earnest string `mapstructure:"earnest"`

	// Paid is what the buyer attaches to the purchase. Empty means the
	// price minus the earnest.
	Paid string `mapstructure:"paid"`

	CreatorShare   uint8 `mapstructure:"creator_share"`
	EnforceBuyer   bool  `mapstructure:"enforce_buyer"`
	RequireEarnest bool  `mapstructure:"require_earnest"`

	// Funding is credited from the master account to buyer and seller
	// before the sale
	Funding string `mapstructure:"funding"`
}

// SaleAmounts are the parsed amounts of a SaleConfig
type SaleAmounts struct {
	Price, Earnest, Paid, Funding amount.Amount
}

// Amounts parses the amount strings of the section
func (s *SaleConfig) Amounts() (SaleAmounts, error) {
	var out SaleAmounts
	var err error
	if out.Price, err = parseAmount("price", s.Price); err != nil {
		return out, err
	}
	if out.Earnest, err = parseAmount("earnest", s.Earnest); err != nil {
		return out, err
	}
	if out.Funding, err = parseAmount("funding", s.Funding); err != nil {
		return out, err
	}
	if s.Paid == "" {
		out.Paid, err = out.Price.Sub(out.Earnest)
		if err != nil {
			return out, fmt.Errorf("earnest %s exceeds price %s", out.Earnest, out.Price)
		}
	} else if out.Paid, err = parseAmount("paid", s.Paid); err != nil {
		return out, err
	}
	return out, nil
}

// Validate performs validation on the sale configuration
func (s *SaleConfig) Validate() error {
	for name, v := range map[string]string{"seller": s.Seller, "buyer": s.Buyer, "creator": s.Creator} {
		if v == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if s.Seller == s.Buyer {
		return fmt.Errorf("seller and buyer must differ")
	}
	if s.CreatorShare > 100 {
		return fmt.Errorf("creator_share must be between 0 and 100, got %d", s.CreatorShare)
	}
	a, err := s.Amounts()
	if err != nil {
		return err
	}
	if a.Price.IsZero() {
		return fmt.Errorf("price must be positive")
	}
	if a.Earnest > a.Price {
		return fmt.Errorf("earnest %s exceeds price %s", a.Earnest, a.Price)
	}
	return nil
}

func parseAmount(field, s string) (amount.Amount, error) {
	a, err := amount.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return a, nil
}
