// Package testing provides test infrastructure for ledger transaction testing.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: A test environment over an in-memory ledger service
//   - Account: Deterministic test accounts derived from a name
//   - Amount helpers: Coins, Units and CoinsOf
//   - Assertions: Test assertion helpers for common checks
//
// Fluent transaction builders live in the feature sub-packages
// (payment, nft, escrow).
//
// # Basic Usage
//
//	func TestPayment(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//
//	    alice := testing.NewAccount("alice")
//	    bob := testing.NewAccount("bob")
//	    env.Fund(alice, bob)
//
//	    result := env.Submit(payment.Pay(alice, bob, testing.Coins(100)).Build())
//	    testing.RequireTxSuccess(t, result)
//	    testing.RequireBalanceCoins(t, env, bob, 1100)
//	}
//
// # TestEnv
//
// TestEnv creates a genesis ledger whose master account holds the whole
// supply. Fund pays DefaultFunding coins from master to each account.
// Every submission advances the manual clock by one second, so close times
// are deterministic.
//
//	env := testing.NewTestEnv(t)
//	env.Fund(alice)                          // 1000 coins
//	env.FundAmount(bob, testing.Coins(500))  // specific amount
//	env.Balance(alice)                       // committed balance
//	env.Owner(registry, 1)                   // token owner
//	env.Escrow(escrowAddr)                   // escrow state and held funds
//
// # Account
//
// Accounts are derived from their name, so NewAccount("alice") is the same
// account in every test and in the nftized CLI, where a passphrase names an
// account.
package testing
