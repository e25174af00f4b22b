// Package amount defines the native currency amount used for balances,
// prices and payouts. Amounts are unsigned and denominated in the smallest
// unit (gwei); one whole coin is UnitsPerCoin units.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of the native currency in gwei.
type Amount uint64

// UnitsPerCoin is the number of gwei in one coin.
const UnitsPerCoin Amount = 1_000_000_000

// coinExp is the decimal exponent between a coin and a gwei.
const coinExp = 9

var (
	ErrOverflow     = errors.New("amount overflow")
	ErrUnderflow    = errors.New("amount underflow")
	ErrInvalidValue = errors.New("invalid amount")
)

// Coins converts whole coins to an Amount.
func Coins(n uint64) Amount {
	return Amount(n) * UnitsPerCoin
}

// Units returns the raw value in gwei.
func (a Amount) Units() uint64 {
	return uint64(a)
}

func (a Amount) IsZero() bool {
	return a == 0
}

// Add returns a+b, failing on overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return Amount(sum), nil
}

// Sub returns a-b, failing when b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrUnderflow, a, b)
	}
	return a - b, nil
}

// Percent returns floor(a * pct / 100). pct must be in [0, 100].
func (a Amount) Percent(pct uint8) (Amount, error) {
	if pct > 100 {
		return 0, fmt.Errorf("%w: percent %d out of range", ErrInvalidValue, pct)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(pct))
	// hi < 100 because pct <= 100, so Div64 cannot panic.
	q, _ := bits.Div64(hi, lo, 100)
	return Amount(q), nil
}

// Split divides a into a share of pct percent (rounded down) and the
// remainder. share + rest == a always holds.
func (a Amount) Split(pct uint8) (share, rest Amount, err error) {
	share, err = a.Percent(pct)
	if err != nil {
		return 0, 0, err
	}
	return share, a - share, nil
}

// Decimal returns the amount in whole coins.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -coinExp)
}

// String formats the amount in whole coins, e.g. "100" or "0.5".
func (a Amount) String() string {
	return a.Decimal().String()
}

// Parse reads a decimal coin value such as "100" or "0.25" and converts it
// to gwei. Fractions finer than one gwei and negative values are rejected.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidValue, s, err)
	}
	return FromDecimal(d)
}

// FromDecimal converts a coin-denominated decimal to an Amount.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative value %s", ErrInvalidValue, d)
	}
	units := d.Shift(coinExp)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidValue, d, coinExp)
	}
	bi := units.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, d)
	}
	return Amount(bi.Uint64()), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}
