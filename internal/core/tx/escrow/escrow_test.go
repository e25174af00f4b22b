package escrow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrUint8(v uint8) *uint8 { return &v }
func ptrBool(v bool) *bool { return &v }

var registryAddr = common.HexToAddress("0x00000000000000000000000000000000000c0de0")

func TestEscrowCreateValidation(t *testing.T) {
	valid := func() *EscrowCreate {
		return NewEscrowCreate(seller, registryAddr, 1, amount.Coins(100), amount.Coins(10), creator)
	}
	tests := []struct {
		name     string
		mutate   func(e *EscrowCreate)
		errorMsg string
	}{
		{name: "valid", mutate: func(*EscrowCreate) {}},
		{name: "earnest equals price", mutate: func(e *EscrowCreate) { e.EarnestAmount = e.PurchasePrice }},
		{name: "missing registry", mutate: func(e *EscrowCreate) { e.Registry = common.Address{} }, errorMsg: "temMALFORMED"},
		{name: "missing creator", mutate: func(e *EscrowCreate) { e.Creator = common.Address{} }, errorMsg: "temDST_NEEDED"},
		{name: "zero price", mutate: func(e *EscrowCreate) { e.PurchasePrice = 0; e.EarnestAmount = 0 }, errorMsg: "temBAD_AMOUNT"},
		{name: "earnest above price", mutate: func(e *EscrowCreate) { e.EarnestAmount = e.PurchasePrice + 1 }, errorMsg: "temBAD_AMOUNT"},
		{name: "share above 100", mutate: func(e *EscrowCreate) { e.CreatorShare = ptrUint8(101) }, errorMsg: "temMALFORMED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := e.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestDepositAndPurchaseValidation(t *testing.T) {
	assert.Contains(t, NewEscrowDeposit(buyer, escrowAddr, 0).Validate().Error(), "temBAD_AMOUNT")
	assert.Contains(t, NewEscrowDeposit(buyer, common.Address{}, 1).Validate().Error(), "temDST_NEEDED")
	assert.NoError(t, NewEscrowPurchase(buyer, escrowAddr, 0).Validate())
	assert.Contains(t, NewEscrowPurchase(buyer, common.Address{}, 1).Validate().Error(), "temDST_NEEDED")
}

func TestEscrowCreateDefaults(t *testing.T) {
	e := NewEscrowCreate(seller, registryAddr, 1, amount.Coins(100), amount.Coins(10), creator)
	assert.Equal(t, seller, e.seller())
	assert.Equal(t, DefaultCreatorShare, e.share())
	assert.True(t, e.enforceBuyer())

	e.EnforceBuyer = ptrBool(false)
	e.CreatorShare = ptrUint8(0)
	assert.False(t, e.enforceBuyer())
	assert.Equal(t, uint8(0), e.share())
}

func TestEscrowCreateJSONRoundTrip(t *testing.T) {
	e := NewEscrowCreate(seller, registryAddr, 3, amount.Coins(100), amount.Coins(10), creator)
	e.CreatorShare = ptrUint8(25)
	data, err := json.Marshal(e)
	require.NoError(t, err)

	parsed, err := tx.FromJSON(data)
	require.NoError(t, err)
	got, ok := parsed.(*EscrowCreate)
	require.True(t, ok)
	assert.Equal(t, uint64(3), got.TokenID)
	assert.Equal(t, uint8(25), got.share())
	assert.Equal(t, creator, got.Creator)
}

// saleEngine deploys a registry as seller holding token 1 and funds buyer.
func saleEngine(t *testing.T) (*tx.Engine, common.Address) {
	t.Helper()
	ctx := context.Background()
	l := ledger.New()
	sb := ledger.NewSandbox(l)
	accts := ledger.NewAccounts(sb)
	require.NoError(t, accts.Credit(buyer, amount.Coins(1000)))
	require.NoError(t, accts.Credit(stranger, amount.Coins(1000)))
	require.NoError(t, sb.Apply(ctx))

	e := tx.NewEngine(l, tx.EngineConfig{})
	res := e.Submit(ctx, nftoken.NewRegistryCreate(seller, "art", 1))
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	return e, res.Metadata.Created
}

func TestEscrowCreateChecksOwnership(t *testing.T) {
	ctx := context.Background()
	e, reg := saleEngine(t)

	res := e.Submit(ctx, NewEscrowCreate(seller, reg, 2, amount.Coins(100), amount.Coins(10), creator))
	assert.Equal(t, tx.TecNO_ENTRY, res.Result)

	res = e.Submit(ctx, NewEscrowCreate(stranger, reg, 1, amount.Coins(100), amount.Coins(10), creator))
	assert.Equal(t, tx.TecNO_PERMISSION, res.Result)

	res = e.Submit(ctx, NewEscrowCreate(seller, reg, 1, amount.Coins(100), amount.Coins(10), creator))
	require.Equal(t, tx.TesSUCCESS, res.Result)

	state, err := ReadEscrow(e.Ledger(), res.Metadata.Created)
	require.NoError(t, err)
	assert.Equal(t, seller, state.Seller)
	assert.Equal(t, uint8(30), state.CreatorShare)
	assert.True(t, state.EnforceBuyer)
	assert.False(t, state.Completed)
}

func TestEscrowFlowThroughEngine(t *testing.T) {
	ctx := context.Background()
	e, reg := saleEngine(t)

	res := e.Submit(ctx, NewEscrowCreate(seller, reg, 1, amount.Coins(100), amount.Coins(10), creator))
	require.Equal(t, tx.TesSUCCESS, res.Result)
	esc := res.Metadata.Created

	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, nftoken.NewTokenApprove(seller, reg, 1, esc)).Result)
	require.Equal(t, tx.TesSUCCESS, e.Submit(ctx, NewEscrowDeposit(buyer, esc, amount.Coins(10))).Result)

	res = e.Submit(ctx, NewEscrowPurchase(buyer, esc, amount.Coins(50)))
	assert.Equal(t, tx.TecINSUFFICIENT_FUNDS, res.Result)

	res = e.Submit(ctx, NewEscrowPurchase(buyer, esc, amount.Coins(90)))
	require.Equal(t, tx.TesSUCCESS, res.Result, res.Message)
	assert.Equal(t, amount.Coins(100), *res.Metadata.Delivered)

	res = e.Submit(ctx, NewEscrowDeposit(buyer, esc, amount.Coins(1)))
	assert.Equal(t, tx.TecINVALID_STATE, res.Result)

	tok, err := nftoken.ReadToken(e.Ledger(), reg, 1)
	require.NoError(t, err)
	assert.Equal(t, buyer, tok.Owner)

	for addr, want := range map[common.Address]amount.Amount{
		esc:     0,
		creator: amount.Coins(30),
		seller:  amount.Coins(70),
		buyer:   amount.Coins(900),
	} {
		bal, err := e.Balance(addr)
		require.NoError(t, err)
		assert.Equal(t, want, bal, addr.Hex())
	}
}

func TestPurchaseOfUnknownEscrow(t *testing.T) {
	e, _ := saleEngine(t)
	res := e.Submit(context.Background(), NewEscrowPurchase(buyer, escrowAddr, amount.Coins(1)))
	assert.Equal(t, tx.TecNO_ENTRY, res.Result)
}

func TestResultFor(t *testing.T) {
	assert.Equal(t, tx.TesSUCCESS, ResultFor(nil))
	assert.Equal(t, tx.TecINVALID_STATE, ResultFor(ErrInvalidState))
	assert.Equal(t, tx.TecINSUFFICIENT_FUNDS, ResultFor(ErrInsufficientFunds))
	assert.Equal(t, tx.TecTRANSFER_REJECTED, ResultFor(ErrTransferRejected))
	assert.Equal(t, tx.TecNO_PERMISSION, ResultFor(ErrNotBuyer))
	assert.Equal(t, tx.TecUNFUNDED_PAYMENT, ResultFor(ErrUnfunded))
	assert.Equal(t, tx.TecNO_ENTRY, ResultFor(ErrNoEscrow))
}
