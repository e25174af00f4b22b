package escrow

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/LeJamon/goNFTize/internal/core/ledger/entry"
	"github.com/LeJamon/goNFTize/internal/core/ledger/keylet"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/ethereum/go-ethereum/common"
)

// ErrNoEscrow is returned when no escrow lives at an address.
var ErrNoEscrow = errors.New("escrow not found")

// ReadEscrow loads the escrow deployed at addr.
func ReadEscrow(v ledger.ReadView, addr common.Address) (*entry.Escrow, error) {
	data, err := v.Read(keylet.Escrow(addr))
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoEscrow, addr.Hex())
	}
	if err != nil {
		return nil, err
	}
	e := &entry.Escrow{}
	if err := entry.Decode(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

func insertEscrow(v ledger.View, e *entry.Escrow) error {
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	return v.Insert(keylet.Escrow(e.Address), data)
}

func updateEscrow(v ledger.View, e *entry.Escrow) error {
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	return v.Update(keylet.Escrow(e.Address), data)
}

// Open loads the escrow at addr and binds it to its registry and the
// account balances of ctx.
func Open(ctx *tx.ApplyContext, addr common.Address) (*Settlement, error) {
	state, err := ReadEscrow(ctx.View, addr)
	if err != nil {
		return nil, err
	}
	registry := nftoken.NewStore(ctx.View).Contract(state.Registry)
	return NewSettlement(state, registry, ctx.Accounts), nil
}

// ResultFor maps a settlement error onto a transaction result.
func ResultFor(err error) tx.Result {
	switch {
	case err == nil:
		return tx.TesSUCCESS
	case errors.Is(err, ErrInvalidState):
		return tx.TecINVALID_STATE
	case errors.Is(err, ErrInsufficientFunds):
		return tx.TecINSUFFICIENT_FUNDS
	case errors.Is(err, ErrTransferRejected):
		return tx.TecTRANSFER_REJECTED
	case errors.Is(err, ErrNotBuyer):
		return tx.TecNO_PERMISSION
	case errors.Is(err, ErrUnfunded), errors.Is(err, ledger.ErrUnfunded):
		return tx.TecUNFUNDED_PAYMENT
	case errors.Is(err, ErrNoEscrow):
		return tx.TecNO_ENTRY
	case errors.Is(err, amount.ErrOverflow):
		return tx.TecINTERNAL
	default:
		return tx.TefINTERNAL
	}
}
