package testing

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Account represents a test account with a key and address.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Key is derived from Name, so the same name always gives the same
	// account.
	Key *ecdsa.PrivateKey

	Address common.Address
}

// NewAccount creates a new test account with a deterministic key derived from the name.
// Using the same name will always produce the same account, making tests reproducible.
func NewAccount(name string) *Account {
	key, err := crypto.KeyFromPassphrase(name)
	if err != nil {
		panic("failed to derive key for account " + name + ": " + err.Error())
	}
	return &Account{
		Name:    name,
		Key:     key,
		Address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

// MasterAccount returns the genesis account holding the whole supply.
func MasterAccount() *Account {
	key := genesis.GenesisKey()
	return &Account{
		Name:    "master",
		Key:     key,
		Address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

// ContractAccount wraps the address of a deployed registry or escrow.
func ContractAccount(name string, addr common.Address) *Account {
	return &Account{Name: name, Address: addr}
}

// Human returns the hex address.
func (a *Account) Human() string {
	return a.Address.Hex()
}

// String returns a string representation of the account.
func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Address.Hex())
}
