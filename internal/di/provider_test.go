package di

import (
	"context"
	"testing"

	"github.com/LeJamon/goNFTize/internal/config"
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/payment"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/LeJamon/goNFTize/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	cfg.Log = logging.Config{Level: "error", Format: "json", Output: []string{"stderr"}}
	cfg.NodeDB.Type = "memory"
	cfg.History.Path = ":memory:"
	return cfg
}

func TestProviderBuildsLedger(t *testing.T) {
	c := New()
	p := NewProvider(c, testConfig(t))
	require.NoError(t, p.RegisterAll())
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	svc, err := p.GetLedgerService()
	require.NoError(t, err)
	assert.True(t, svc.HistoryEnabled())

	master := genesis.GenesisAddress()
	info, err := svc.GetAccountInfo(master)
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(genesis.DefaultSupply), info.Balance)

	buyer := crypto.AddressFromPassphrase("buyer")
	res, err := svc.Submit(context.Background(), payment.NewPayment(master, buyer, amount.Coins(5)))
	require.NoError(t, err)
	require.Equal(t, tx.TesSUCCESS, res.Result)

	page, err := svc.GetAccountTransactions(context.Background(), buyer, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 1)

	reg, err := p.GetMetricsRegistry()
	require.NoError(t, err)
	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "nftized_transactions_total" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProviderHistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false

	c := New()
	p := NewProvider(c, cfg)
	require.NoError(t, p.RegisterAll())
	t.Cleanup(func() { c.Close() })

	svc, err := p.GetLedgerService()
	require.NoError(t, err)
	assert.False(t, svc.HistoryEnabled())
}

func TestProviderCustomGenesis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Genesis.Passphrase = "treasury"
	cfg.Genesis.Supply = "500"

	c := New()
	p := NewProvider(c, cfg)
	require.NoError(t, p.RegisterAll())
	t.Cleanup(func() { c.Close() })

	svc, err := p.GetLedgerService()
	require.NoError(t, err)
	bal, err := svc.GetBalance(crypto.AddressFromPassphrase("treasury"))
	require.NoError(t, err)
	assert.Equal(t, amount.Coins(500), bal)
}

func TestProviderRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.NodeDB.Type = "bbolt"

	p := NewProvider(New(), cfg)
	assert.Error(t, p.RegisterAll())
}
