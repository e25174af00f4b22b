package testing

import (
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// RequireBalance asserts that an account has the expected balance.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %s, got %s",
		acc.Name, expected, actual)
}

// RequireBalanceCoins asserts that an account has the expected balance in
// whole coins.
func RequireBalanceCoins(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	RequireBalance(t, env, acc, Coins(expected))
}

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s", result)
	require.Equal(t, tx.TesSUCCESS, result.Code,
		"Expected tesSUCCESS, got %s", result)
}

// RequireTxFail asserts that a transaction result indicates failure with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expectedCode tx.Result) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s", expectedCode, result)
}

// RequireTxClaimed asserts that a transaction was refused while applying
// with the given tec code.
func RequireTxClaimed(t *testing.T, result TxResult, expectedCode tx.Result) {
	t.Helper()
	require.True(t, result.IsClaimed(),
		"Expected refused transaction with code %s, got %s", expectedCode, result)
	RequireTxFail(t, result, expectedCode)
}

// RequireAccountExists asserts that an account exists in the ledger.
func RequireAccountExists(t *testing.T, env *TestEnv, acc *Account) {
	t.Helper()
	require.True(t, env.Exists(acc),
		"Expected account %s to exist, but it does not", acc.Name)
}

// RequireAccountNotExists asserts that an account does not exist in the ledger.
func RequireAccountNotExists(t *testing.T, env *TestEnv, acc *Account) {
	t.Helper()
	require.False(t, env.Exists(acc),
		"Expected account %s to not exist, but it does", acc.Name)
}

// RequireOwner asserts the owner of a token.
func RequireOwner(t *testing.T, env *TestEnv, registry common.Address, id uint64, expected *Account) {
	t.Helper()
	actual := env.Owner(registry, id)
	require.Equal(t, expected.Address, actual,
		"Token %d owner mismatch: expected %s, got %s", id, expected, actual.Hex())
}

// RequireSequence asserts the next sequence of an account.
func RequireSequence(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	actual := env.Seq(acc)
	require.Equal(t, expected, actual,
		"Account %s sequence mismatch: expected %d, got %d", acc.Name, expected, actual)
}
