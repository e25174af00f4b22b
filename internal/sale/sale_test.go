package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/LeJamon/goNFTize/internal/config"
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/genesis"
	"github.com/LeJamon/goNFTize/internal/core/ledger/service"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	_ "github.com/LeJamon/goNFTize/internal/core/tx/all"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func defaultSale() *config.SaleConfig {
	return &config.SaleConfig{
		Seller:       "seller",
		Buyer:        "buyer",
		Creator:      "creator",
		Registry:     "NFTize Collection",
		TokenID:      1,
		Price:        "100",
		Earnest:      "10",
		CreatorShare: 30,
		EnforceBuyer: true,
		Funding:      "1000",
	}
}

func run(t *testing.T, cfg *config.SaleConfig) (*Report, error) {
	t.Helper()
	log := zaptest.NewLogger(t)
	svcCfg := service.DefaultConfig()
	svcCfg.Logger = log
	svc, err := service.New(svcCfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))

	plan, err := PlanFromConfig(cfg, genesis.GenesisAddress())
	require.NoError(t, err)
	return NewRunner(svc, log).Run(context.Background(), plan)
}

func TestPlanFromConfig(t *testing.T) {
	cfg := defaultSale()
	cfg.Creator = "0x00000000000000000000000000000000000c4ea7"
	plan, err := PlanFromConfig(cfg, genesis.GenesisAddress())
	require.NoError(t, err)

	assert.Equal(t, crypto.AddressFromPassphrase("seller"), plan.Seller)
	assert.Equal(t, crypto.AddressFromPassphrase("buyer"), plan.Buyer)
	assert.Equal(t, common.HexToAddress(cfg.Creator), plan.Creator)
	assert.Equal(t, amount.Coins(90), plan.Paid)

	cfg.Buyer = ""
	_, err = PlanFromConfig(cfg, genesis.GenesisAddress())
	assert.Error(t, err)
}

func TestRunSettlesSale(t *testing.T) {
	report, err := run(t, defaultSale())
	require.NoError(t, err)
	require.True(t, report.Settled, report.Purchase.Message)

	plan, _ := PlanFromConfig(defaultSale(), genesis.GenesisAddress())
	assert.Equal(t, plan.Seller, report.Before.Owner)
	assert.Equal(t, plan.Buyer, report.After.Owner)

	assert.Equal(t, amount.Coins(1000), report.Before.Buyer)
	assert.Equal(t, amount.Coins(900), report.After.Buyer)
	assert.Equal(t, amount.Coins(1070), report.After.Seller)
	assert.Equal(t, amount.Coins(30), report.After.Creator)
	assert.True(t, report.After.Escrow.IsZero())

	names := make([]string, 0, len(report.Steps))
	for _, s := range report.Steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"fund " + plan.Seller.Hex(),
		"fund " + plan.Buyer.Hex(),
		"deploy registry",
		"deploy escrow",
		"approve escrow",
		"deposit earnest",
		"submit purchase",
	}, names)
}

func TestRunRefundsOverpayment(t *testing.T) {
	cfg := defaultSale()
	cfg.Paid = "100"

	report, err := run(t, cfg)
	require.NoError(t, err)
	require.True(t, report.Settled)
	assert.Equal(t, amount.Coins(900), report.After.Buyer)
	assert.True(t, report.After.Escrow.IsZero())
}

func TestRunReportsRefusedPurchase(t *testing.T) {
	cfg := defaultSale()
	cfg.Paid = "50"

	report, err := run(t, cfg)
	require.NoError(t, err)
	assert.False(t, report.Settled)
	assert.Equal(t, tx.TecINSUFFICIENT_FUNDS, report.Purchase.Result)

	// only the earnest left the buyer
	assert.Equal(t, amount.Coins(990), report.After.Buyer)
	assert.Equal(t, amount.Coins(10), report.After.Escrow)
	assert.Equal(t, report.Before.Owner, report.After.Owner)
	assert.True(t, report.After.Creator.IsZero())
}

func TestRunStopsOnSetupFailure(t *testing.T) {
	cfg := defaultSale()
	cfg.Funding = "200000000"

	_, err := run(t, cfg)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, tx.TecUNFUNDED_PAYMENT, stepErr.Result.Result)
}
