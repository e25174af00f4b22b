package testing

import (
	"context"
	"testing"
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/core/ledger/service"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	_ "github.com/LeJamon/goNFTize/internal/core/tx/all"
	"github.com/LeJamon/goNFTize/internal/core/tx/payment"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap/zaptest"
)

// TestEnv manages a test ledger environment for transaction testing.
// It provides a simplified interface for creating accounts, funding them,
// submitting transactions, and verifying results.
type TestEnv struct {
	t        *testing.T
	svc      *service.Service
	clock    *ManualClock
	accounts map[string]*Account
	master   *Account
}

// NewTestEnv creates a new in-memory test environment with a genesis ledger.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, service.DefaultConfig())
}

// NewTestEnvWithConfig creates a test environment over a custom service
// configuration, e.g. with a persistent store or history. The clock and
// logger are always replaced by test ones.
func NewTestEnvWithConfig(t *testing.T, cfg service.Config) *TestEnv {
	t.Helper()

	clock := NewManualClock()
	cfg.Clock = clock
	cfg.Logger = zaptest.NewLogger(t)
	if cfg.Genesis.Supply.IsZero() {
		cfg.Genesis = genesis.DefaultConfig()
	}

	svc, err := service.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create ledger service: %v", err)
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start ledger service: %v", err)
	}

	master := MasterAccount()
	if cfg.Genesis.Master != (common.Address{}) && cfg.Genesis.Master != master.Address {
		master = ContractAccount("master", cfg.Genesis.Master)
	}

	env := &TestEnv{
		t:        t,
		svc:      svc,
		clock:    clock,
		accounts: map[string]*Account{master.Name: master},
		master:   master,
	}
	return env
}

// Fund credits DefaultFunding coins from the master account to each account.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, Coins(DefaultFunding))
	}
}

// FundAmount credits amt from the master account to acc.
func (e *TestEnv) FundAmount(acc *Account, amt amount.Amount) {
	e.t.Helper()
	e.accounts[acc.Name] = acc
	result := e.Submit(payment.NewPayment(e.master.Address, acc.Address, amt))
	if !result.Success {
		e.t.Fatalf("Failed to fund account %s: %s", acc, result)
	}
}

// Submit applies a transaction and advances the clock by one second.
func (e *TestEnv) Submit(transaction tx.Transaction) TxResult {
	e.t.Helper()
	res, err := e.svc.Submit(context.Background(), transaction)
	if err != nil {
		e.t.Fatalf("Failed to submit %s: %v", transaction.TxType(), err)
	}
	e.clock.Advance(time.Second)
	return newTxResult(res)
}

// Balance returns the committed balance of an account.
func (e *TestEnv) Balance(acc *Account) amount.Amount {
	e.t.Helper()
	return e.BalanceOf(acc.Address)
}

// BalanceOf returns the committed balance of an address.
func (e *TestEnv) BalanceOf(addr common.Address) amount.Amount {
	e.t.Helper()
	bal, err := e.svc.GetBalance(addr)
	if err != nil {
		e.t.Fatalf("Failed to read balance of %s: %v", addr.Hex(), err)
	}
	return bal
}

// Seq returns the next sequence acc must use.
func (e *TestEnv) Seq(acc *Account) uint64 {
	e.t.Helper()
	info, err := e.svc.GetAccountInfo(acc.Address)
	if err != nil {
		e.t.Fatalf("Failed to read account %s: %v", acc, err)
	}
	return info.Sequence
}

// Exists checks if an account has an AccountRoot.
func (e *TestEnv) Exists(acc *Account) bool {
	e.t.Helper()
	info, err := e.svc.GetAccountInfo(acc.Address)
	if err != nil {
		e.t.Fatalf("Failed to read account %s: %v", acc, err)
	}
	return info.Exists
}

// Owner returns the owner of a token.
func (e *TestEnv) Owner(registry common.Address, id uint64) common.Address {
	e.t.Helper()
	owner, err := e.svc.GetOwner(registry, id)
	if err != nil {
		e.t.Fatalf("Failed to read token %d of %s: %v", id, registry.Hex(), err)
	}
	return owner
}

// Approved returns the approved spender of a token, zero when none.
func (e *TestEnv) Approved(registry common.Address, id uint64) common.Address {
	e.t.Helper()
	info, err := e.svc.GetTokenInfo(registry, id)
	if err != nil {
		e.t.Fatalf("Failed to read token %d of %s: %v", id, registry.Hex(), err)
	}
	return info.Approved
}

// Escrow returns the state of the escrow at addr.
func (e *TestEnv) Escrow(addr common.Address) *service.EscrowInfoResult {
	e.t.Helper()
	info, err := e.svc.GetEscrowInfo(addr)
	if err != nil {
		e.t.Fatalf("Failed to read escrow %s: %v", addr.Hex(), err)
	}
	return info
}

// T returns the test the environment belongs to.
func (e *TestEnv) T() *testing.T {
	return e.t
}

// Now returns the current engine time.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// AdvanceTime moves the engine clock forward.
func (e *TestEnv) AdvanceTime(d time.Duration) {
	e.clock.Advance(d)
}

// Ledger returns the committed ledger.
func (e *TestEnv) Ledger() *ledger.Ledger {
	return e.svc.Ledger()
}

// Service returns the ledger service behind the environment.
func (e *TestEnv) Service() *service.Service {
	return e.svc
}

// MasterAccount returns the account holding the genesis supply.
func (e *TestEnv) MasterAccount() *Account {
	return e.master
}

// GetAccount returns an account funded through this environment by name.
func (e *TestEnv) GetAccount(name string) *Account {
	return e.accounts[name]
}

// WithSeq pins the sequence a transaction must be applied at.
func WithSeq(transaction tx.Transaction, seq uint64) tx.Transaction {
	seqCopy := seq
	transaction.GetCommon().Sequence = &seqCopy
	return transaction
}
