package nft_test

import (
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	jtx "github.com/LeJamon/goNFTize/internal/testing"
	"github.com/LeJamon/goNFTize/internal/testing/nft"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryDeploy tests that a registry is deployed at a fresh address
// with the listed tokens minted to the issuer.
func TestRegistryDeploy(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	result := env.Submit(nft.RegistryCreate(alice, "Genesis Art").Mint(1, 2).Build())
	jtx.RequireTxSuccess(t, result)
	require.NotEqual(t, common.Address{}, result.Created)

	info, err := env.Service().GetRegistryInfo(result.Created)
	require.NoError(t, err)
	assert.Equal(t, alice.Address, info.Issuer)
	assert.Equal(t, "Genesis Art", info.Name)
	assert.Equal(t, uint64(2), info.Minted)

	jtx.RequireOwner(t, env, result.Created, 1, alice)
	jtx.RequireOwner(t, env, result.Created, 2, alice)

	// A second deployment lands elsewhere.
	second := nft.Deploy(env, alice, "Genesis Art")
	assert.NotEqual(t, result.Created, second)
}

// TestRegistryCreateInvalid tests preflight checks of RegistryCreate.
func TestRegistryCreateInvalid(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	jtx.RequireTxFail(t, env.Submit(nft.RegistryCreate(alice, "").Build()), tx.TemMALFORMED)
	jtx.RequireTxFail(t, env.Submit(nft.RegistryCreate(alice, "dup").Mint(4, 4).Build()), tx.TemMALFORMED)
	jtx.RequireSequence(t, env, alice, 0)
}

// TestMint tests that only the issuer may mint and ids are unique.
func TestMint(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	registry := nft.Deploy(env, alice, "Collection")

	jtx.RequireTxSuccess(t, env.Submit(nft.Mint(alice, registry, 7).Build()))
	jtx.RequireOwner(t, env, registry, 7, alice)

	jtx.RequireTxSuccess(t, env.Submit(nft.Mint(alice, registry, 8).To(bob).Build()))
	jtx.RequireOwner(t, env, registry, 8, bob)

	jtx.RequireTxClaimed(t, env.Submit(nft.Mint(alice, registry, 7).Build()), tx.TecDUPLICATE)
	jtx.RequireTxClaimed(t, env.Submit(nft.Mint(bob, registry, 9).Build()), tx.TecNO_PERMISSION)

	unknown := jtx.NewAccount("nowhere").Address
	jtx.RequireTxClaimed(t, env.Submit(nft.Mint(alice, unknown, 1).Build()), tx.TecNO_ENTRY)
}

// TestApprove tests approval and revocation by the owner.
func TestApprove(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	registry := nft.Deploy(env, alice, "Collection", 1)

	jtx.RequireTxClaimed(t, env.Submit(nft.Approve(bob, registry, 1, bob.Address).Build()), tx.TecNO_PERMISSION)
	jtx.RequireTxFail(t, env.Submit(nft.Approve(alice, registry, 1, alice.Address).Build()), tx.TemDST_IS_SRC)

	jtx.RequireTxSuccess(t, env.Submit(nft.Approve(alice, registry, 1, bob.Address).Build()))
	assert.Equal(t, bob.Address, env.Approved(registry, 1))

	jtx.RequireTxSuccess(t, env.Submit(nft.Revoke(alice, registry, 1).Build()))
	assert.Equal(t, common.Address{}, env.Approved(registry, 1))

	jtx.RequireTxClaimed(t, env.Submit(nft.Approve(alice, registry, 2, bob.Address).Build()), tx.TecNO_ENTRY)
}

// TestTransfer tests transfers by the owner and by an approved spender.
func TestTransfer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	carol := jtx.NewAccount("carol")
	env.Fund(alice, bob, carol)
	registry := nft.Deploy(env, alice, "Collection", 1)

	// Bob is not approved yet.
	jtx.RequireTxClaimed(t, env.Submit(nft.Transfer(bob, registry, 1, carol).From(alice).Build()), tx.TecNO_PERMISSION)

	jtx.RequireTxSuccess(t, env.Submit(nft.Approve(alice, registry, 1, bob.Address).Build()))
	jtx.RequireTxSuccess(t, env.Submit(nft.Transfer(bob, registry, 1, carol).From(alice).Build()))
	jtx.RequireOwner(t, env, registry, 1, carol)

	// The approval does not survive the transfer.
	assert.Equal(t, common.Address{}, env.Approved(registry, 1))
	jtx.RequireTxClaimed(t, env.Submit(nft.Transfer(bob, registry, 1, alice).From(carol).Build()), tx.TecNO_PERMISSION)

	// A stale owner is refused.
	jtx.RequireTxClaimed(t, env.Submit(nft.Transfer(alice, registry, 1, bob).Build()), tx.TecNO_PERMISSION)

	jtx.RequireTxSuccess(t, env.Submit(nft.Transfer(carol, registry, 1, alice).Build()))
	jtx.RequireOwner(t, env, registry, 1, alice)
}

// TestTransferToHolder tests that a transfer to the current holder is
// malformed.
func TestTransferToHolder(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	registry := nft.Deploy(env, alice, "Collection", 1)

	jtx.RequireTxFail(t, env.Submit(nft.Transfer(alice, registry, 1, alice).Build()), tx.TemDST_IS_SRC)
}
