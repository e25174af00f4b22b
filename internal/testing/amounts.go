package testing

import "github.com/LeJamon/goNFTize/internal/core/amount"

// DefaultFunding is what Fund credits to each account.
const DefaultFunding uint64 = 1000

// Coins converts whole coins to an amount.
// For example, Coins(100) returns 100 * 10^9 units.
func Coins(n uint64) amount.Amount {
	return amount.Coins(n)
}

// Units returns the raw unit amount unchanged.
// This is a convenience function for clarity when specifying amounts below one coin.
func Units(n uint64) amount.Amount {
	return amount.Amount(n)
}

// CoinsOf parses a decimal coin value such as "0.5". It panics on bad
// input.
func CoinsOf(s string) amount.Amount {
	return amount.MustParse(s)
}
