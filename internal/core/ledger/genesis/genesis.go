// Package genesis seeds an empty ledger with the master account holding the
// entire coin supply.
package genesis

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// MasterPassphrase is the well-known seed of the genesis account.
const MasterPassphrase = "masterpassphrase"

// DefaultSupply is the number of coins credited to the master account.
const DefaultSupply uint64 = 100_000_000

// ErrNotEmpty is returned when seeding a ledger that already has state.
var ErrNotEmpty = errors.New("genesis: ledger is not empty")

// Config controls genesis creation
type Config struct {
	// Master receives the whole supply. Zero means the passphrase account.
	Master common.Address

	Supply amount.Amount
}

// DefaultConfig returns the standard genesis configuration
func DefaultConfig() Config {
	return Config{
		Master: GenesisAddress(),
		Supply: amount.Coins(DefaultSupply),
	}
}

// GenesisKey derives the private key of the genesis account.
func GenesisKey() *ecdsa.PrivateKey {
	key, err := crypto.KeyFromPassphrase(MasterPassphrase)
	if err != nil {
		// the keccak of a fixed string is a valid scalar
		panic(err)
	}
	return key
}

// GenesisAddress returns the address of the genesis account.
func GenesisAddress() common.Address {
	return ethcrypto.PubkeyToAddress(GenesisKey().PublicKey)
}

// Create credits the supply to the master account of an empty ledger.
func Create(ctx context.Context, l *ledger.Ledger, cfg Config) error {
	if l.Len() != 0 {
		return ErrNotEmpty
	}
	if cfg.Master == (common.Address{}) {
		cfg.Master = GenesisAddress()
	}

	sb := ledger.NewSandbox(l)
	if err := ledger.NewAccounts(sb).Credit(cfg.Master, cfg.Supply); err != nil {
		sb.Discard()
		return fmt.Errorf("genesis: credit master: %w", err)
	}
	if err := sb.Apply(ctx); err != nil {
		return fmt.Errorf("genesis: commit: %w", err)
	}
	return nil
}
