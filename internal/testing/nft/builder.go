// Package nft provides fluent builders for registry and token transactions
// used in tests.
package nft

import (
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/LeJamon/goNFTize/internal/testing"
	"github.com/ethereum/go-ethereum/common"
)

// RegistryCreateBuilder provides a fluent interface for building
// RegistryCreate transactions.
type RegistryCreateBuilder struct {
	issuer   *testing.Account
	name     string
	ids      []uint64
	sequence *uint64
}

// RegistryCreate creates a new RegistryCreateBuilder.
func RegistryCreate(issuer *testing.Account, name string) *RegistryCreateBuilder {
	return &RegistryCreateBuilder{issuer: issuer, name: name}
}

// Mint lists token ids minted to the issuer on deployment.
func (b *RegistryCreateBuilder) Mint(ids ...uint64) *RegistryCreateBuilder {
	b.ids = append(b.ids, ids...)
	return b
}

// Sequence sets the sequence number explicitly.
func (b *RegistryCreateBuilder) Sequence(seq uint64) *RegistryCreateBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the RegistryCreate transaction.
func (b *RegistryCreateBuilder) Build() tx.Transaction {
	r := nftoken.NewRegistryCreate(b.issuer.Address, b.name, b.ids...)
	if b.sequence != nil {
		r.WithSequence(*b.sequence)
	}
	return r
}

// TokenMintBuilder provides a fluent interface for building TokenMint
// transactions.
type TokenMintBuilder struct {
	issuer      *testing.Account
	registry    common.Address
	id          uint64
	destination *testing.Account
}

// Mint creates a new TokenMintBuilder.
func Mint(issuer *testing.Account, registry common.Address, id uint64) *TokenMintBuilder {
	return &TokenMintBuilder{issuer: issuer, registry: registry, id: id}
}

// To mints the token straight to another account.
func (b *TokenMintBuilder) To(dest *testing.Account) *TokenMintBuilder {
	b.destination = dest
	return b
}

// Build constructs the TokenMint transaction.
func (b *TokenMintBuilder) Build() tx.Transaction {
	m := nftoken.NewTokenMint(b.issuer.Address, b.registry, b.id)
	if b.destination != nil {
		m.Destination = b.destination.Address
	}
	return m
}

// TokenApproveBuilder provides a fluent interface for building
// TokenApprove transactions.
type TokenApproveBuilder struct {
	owner    *testing.Account
	registry common.Address
	id       uint64
	spender  common.Address
}

// Approve creates a TokenApproveBuilder authorizing spender, which may be
// a contract such as an escrow.
func Approve(owner *testing.Account, registry common.Address, id uint64, spender common.Address) *TokenApproveBuilder {
	return &TokenApproveBuilder{owner: owner, registry: registry, id: id, spender: spender}
}

// Revoke creates a TokenApproveBuilder clearing the current approval.
func Revoke(owner *testing.Account, registry common.Address, id uint64) *TokenApproveBuilder {
	return Approve(owner, registry, id, common.Address{})
}

// Build constructs the TokenApprove transaction.
func (b *TokenApproveBuilder) Build() tx.Transaction {
	return nftoken.NewTokenApprove(b.owner.Address, b.registry, b.id, b.spender)
}

// TokenTransferBuilder provides a fluent interface for building
// TokenTransfer transactions.
type TokenTransferBuilder struct {
	operator    *testing.Account
	owner       *testing.Account
	registry    common.Address
	id          uint64
	destination *testing.Account
}

// Transfer creates a TokenTransferBuilder moving a token the operator holds.
func Transfer(operator *testing.Account, registry common.Address, id uint64, dest *testing.Account) *TokenTransferBuilder {
	return &TokenTransferBuilder{operator: operator, registry: registry, id: id, destination: dest}
}

// From moves the token out of another holder's account; the operator must
// be approved for it.
func (b *TokenTransferBuilder) From(owner *testing.Account) *TokenTransferBuilder {
	b.owner = owner
	return b
}

// Build constructs the TokenTransfer transaction.
func (b *TokenTransferBuilder) Build() tx.Transaction {
	t := nftoken.NewTokenTransfer(b.operator.Address, b.registry, b.id, b.destination.Address)
	if b.owner != nil {
		t.Owner = b.owner.Address
	}
	return t
}

// Deploy submits a RegistryCreate for issuer minting ids and returns the
// registry address. It fails the test when the deployment is refused.
func Deploy(env *testing.TestEnv, issuer *testing.Account, name string, ids ...uint64) common.Address {
	result := env.Submit(RegistryCreate(issuer, name).Mint(ids...).Build())
	if !result.Success {
		env.T().Fatalf("Failed to deploy registry %s: %s", name, result)
	}
	return result.Created
}
