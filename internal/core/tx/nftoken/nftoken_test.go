package nftoken

import (
	"context"
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deploy(t *testing.T, e *tx.Engine, ids ...uint64) common.Address {
	t.Helper()
	res := e.Submit(context.Background(), NewRegistryCreate(issuer, "art", ids...))
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	require.NotEqual(t, common.Address{}, res.Metadata.Created)
	return res.Metadata.Created
}

func ownerOf(t *testing.T, e *tx.Engine, reg common.Address, id uint64) common.Address {
	t.Helper()
	tok, err := ReadToken(e.Ledger(), reg, id)
	require.NoError(t, err)
	return tok.Owner
}

func TestRegistryCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		tx       *RegistryCreate
		errorMsg string
	}{
		{name: "valid", tx: NewRegistryCreate(issuer, "art", 1, 2)},
		{name: "missing name", tx: NewRegistryCreate(issuer, ""), errorMsg: "temMALFORMED"},
		{name: "duplicate id", tx: NewRegistryCreate(issuer, "art", 1, 1), errorMsg: "temMALFORMED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestRegistryCreateMintsToDeployer(t *testing.T) {
	e := tx.NewEngine(ledger.New(), tx.EngineConfig{})
	reg := deploy(t, e, 7, 8)

	assert.Equal(t, issuer, ownerOf(t, e, reg, 7))
	assert.Equal(t, issuer, ownerOf(t, e, reg, 8))

	second := deploy(t, e)
	assert.NotEqual(t, reg, second, "each deployment gets its own address")
}

func TestTokenMintTransaction(t *testing.T) {
	ctx := context.Background()
	e := tx.NewEngine(ledger.New(), tx.EngineConfig{})
	reg := deploy(t, e)

	mint := NewTokenMint(issuer, reg, 1)
	mint.Destination = alice
	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, mint).Result)
	assert.Equal(t, alice, ownerOf(t, e, reg, 1))

	assert.Equal(t, tx.TecDUPLICATE, e.Submit(ctx, NewTokenMint(issuer, reg, 1)).Result)
	assert.Equal(t, tx.TecNO_PERMISSION, e.Submit(ctx, NewTokenMint(alice, reg, 2)).Result)
	assert.Equal(t, tx.TecNO_ENTRY, e.Submit(ctx, NewTokenMint(issuer, bob, 2)).Result)
}

func TestApprovedTransferTransaction(t *testing.T) {
	ctx := context.Background()
	e := tx.NewEngine(ledger.New(), tx.EngineConfig{})
	reg := deploy(t, e, 1)

	res := e.Submit(ctx, NewTokenTransfer(bob, reg, 1, bob))
	assert.Equal(t, tx.TemDST_IS_SRC, res.Result)

	steal := NewTokenTransfer(bob, reg, 1, alice)
	steal.Owner = issuer
	assert.Equal(t, tx.TecNO_PERMISSION, e.Submit(ctx, steal).Result)

	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, NewTokenApprove(issuer, reg, 1, bob)).Result)
	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, steal).Result)
	assert.Equal(t, alice, ownerOf(t, e, reg, 1))
}

func TestOwnerTransferTransaction(t *testing.T) {
	ctx := context.Background()
	e := tx.NewEngine(ledger.New(), tx.EngineConfig{})
	reg := deploy(t, e, 1)

	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, NewTokenTransfer(issuer, reg, 1, alice)).Result)
	assert.Equal(t, alice, ownerOf(t, e, reg, 1))
	assert.Equal(t, tx.TecNO_PERMISSION, e.Submit(ctx, NewTokenTransfer(issuer, reg, 1, bob)).Result)
}
