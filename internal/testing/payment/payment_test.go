package payment

import (
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	paymenttx "github.com/LeJamon/goNFTize/internal/core/tx/payment"
	jtx "github.com/LeJamon/goNFTize/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPaymentTransfer tests a plain transfer between funded accounts.
func TestPaymentTransfer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)

	result := env.Submit(PayCoins(alice, bob, 100).Build())
	jtx.RequireTxSuccess(t, result)

	jtx.RequireBalanceCoins(t, env, bob, jtx.DefaultFunding+100)
	jtx.RequireBalanceCoins(t, env, alice, jtx.DefaultFunding-100)
}

// TestPaymentCreatesDestination tests that the first credit creates the
// destination account.
func TestPaymentCreatesDestination(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	carol := jtx.NewAccount("carol")
	env.Fund(alice)
	jtx.RequireAccountNotExists(t, env, carol)

	jtx.RequireTxSuccess(t, env.Submit(Pay(alice, carol, jtx.Units(1)).Build()))

	jtx.RequireAccountExists(t, env, carol)
	jtx.RequireBalance(t, env, carol, jtx.Units(1))
	jtx.RequireSequence(t, env, carol, 0)
}

// TestPaymentUnfunded tests that overspending is claimed and changes nothing.
func TestPaymentUnfunded(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)

	result := env.Submit(PayCoins(alice, bob, jtx.DefaultFunding+1).Build())
	jtx.RequireTxClaimed(t, result, tx.TecUNFUNDED_PAYMENT)

	jtx.RequireBalanceCoins(t, env, alice, jtx.DefaultFunding)
	jtx.RequireBalanceCoins(t, env, bob, jtx.DefaultFunding)
	jtx.RequireSequence(t, env, alice, 0)
}

// TestPaymentWholeBalance tests that an account may send everything it holds.
func TestPaymentWholeBalance(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)

	jtx.RequireTxSuccess(t, env.Submit(PayCoins(alice, bob, jtx.DefaultFunding).Build()))
	jtx.RequireBalance(t, env, alice, 0)
	jtx.RequireBalanceCoins(t, env, bob, 2*jtx.DefaultFunding)
}

// TestPaymentMalformed tests preflight rejections.
func TestPaymentMalformed(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice)

	jtx.RequireTxFail(t, env.Submit(Pay(alice, bob, 0).Build()), tx.TemBAD_AMOUNT)
	jtx.RequireTxFail(t, env.Submit(PayCoins(alice, alice, 1).Build()), tx.TemDST_IS_SRC)
	jtx.RequireSequence(t, env, alice, 0)
}

// TestPaymentSequence tests explicit sequence numbers.
func TestPaymentSequence(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice)

	jtx.RequireTxFail(t, env.Submit(PayCoins(alice, bob, 1).Sequence(1).Build()), tx.TerPRE_SEQ)
	jtx.RequireTxSuccess(t, env.Submit(PayCoins(alice, bob, 1).Sequence(0).Build()))
	jtx.RequireTxSuccess(t, env.Submit(PayCoins(alice, bob, 1).Sequence(1).Build()))
	jtx.RequireTxFail(t, env.Submit(PayCoins(alice, bob, 1).Sequence(1).Build()), tx.TefPAST_SEQ)
	jtx.RequireSequence(t, env, alice, 2)
}

// TestPaymentBuilderMemo tests that the builder carries the memo through.
func TestPaymentBuilderMemo(t *testing.T) {
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")

	built := PayCoins(alice, bob, 3).Memo("rent").Sequence(7).Build()
	p, ok := built.(*paymenttx.Payment)
	require.True(t, ok)
	assert.Equal(t, "rent", p.Memo)
	require.NotNil(t, p.Sequence)
	assert.Equal(t, uint64(7), *p.Sequence)
	assert.Equal(t, jtx.Coins(3), p.Amount)
	assert.Equal(t, bob.Address, p.Destination)
}
