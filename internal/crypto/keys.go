// Package crypto derives account keys. Accounts are secp256k1 keys with
// Ethereum-style addresses; well-known accounts (genesis, test and demo
// accounts) derive their key from a passphrase.
package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrEmptyPassphrase is returned when deriving a key from an empty string.
var ErrEmptyPassphrase = errors.New("passphrase is empty")

// KeyFromPassphrase derives a private key from the Keccak-256 hash of
// passphrase.
func KeyFromPassphrase(passphrase string) (*ecdsa.PrivateKey, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	key, err := ethcrypto.ToECDSA(ethcrypto.Keccak256([]byte(passphrase)))
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// AddressFromPassphrase returns the address of the key derived from
// passphrase. It panics on an empty passphrase; use it with constants.
func AddressFromPassphrase(passphrase string) common.Address {
	key, err := KeyFromPassphrase(passphrase)
	if err != nil {
		panic(err)
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}

// ParseAddress accepts a 0x-prefixed hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ResolveAccount accepts either a hex address or a passphrase naming a
// derived account.
func ResolveAccount(s string) (common.Address, error) {
	if common.IsHexAddress(s) {
		return common.HexToAddress(s), nil
	}
	key, err := KeyFromPassphrase(s)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey), nil
}
