package service

import (
	"context"
	"sync"
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/escrow"
	"github.com/ethereum/go-ethereum/common"
)

// EventHooks provides structured callbacks for ledger events. Hooks run
// synchronously in submission order while the engine lock is held, so they
// must not submit transactions themselves.
type EventHooks struct {
	// OnTransaction is called for every submission, applied or not
	OnTransaction func(event TransactionEvent)

	// OnSettlement is called when an escrow sale completes
	OnSettlement func(event SettlementEvent)
}

// TransactionEvent describes a submission
type TransactionEvent struct {
	Hash      common.Hash
	Type      tx.Type
	Account   common.Address
	Sequence  uint64
	Result    tx.Result
	Applied   bool
	CloseTime time.Time
}

// SettlementEvent describes a completed escrow sale
type SettlementEvent struct {
	Hash      common.Hash
	Escrow    common.Address
	Buyer     common.Address
	Price     amount.Amount
	CloseTime time.Time
}

// EventPublisher forwards engine submissions to the registered hooks. It is
// a tx.Observer.
type EventPublisher struct {
	mu    sync.RWMutex
	hooks *EventHooks
}

var _ tx.Observer = (*EventPublisher)(nil)

// NewEventPublisher creates a new event publisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// SetEventHooks sets the structured event hooks.
func (p *EventPublisher) SetEventHooks(hooks *EventHooks) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = hooks
}

// GetEventHooks returns the current event hooks.
func (p *EventPublisher) GetEventHooks() *EventHooks {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hooks
}

// HasSubscribers returns true if there are any subscribers.
func (p *EventPublisher) HasSubscribers() bool {
	hooks := p.GetEventHooks()
	return hooks != nil && (hooks.OnTransaction != nil || hooks.OnSettlement != nil)
}

// TransactionApplied publishes the submission and, for a completed
// purchase, the settlement.
func (p *EventPublisher) TransactionApplied(_ context.Context, t tx.Transaction, res tx.ApplyResult) {
	hooks := p.GetEventHooks()
	if hooks == nil {
		return
	}

	if hooks.OnTransaction != nil {
		hooks.OnTransaction(TransactionEvent{
			Hash:      common.Hash(res.Hash),
			Type:      t.TxType(),
			Account:   t.GetCommon().Account,
			Sequence:  res.Sequence,
			Result:    res.Result,
			Applied:   res.Applied,
			CloseTime: res.CloseTime,
		})
	}

	purchase, ok := t.(*escrow.EscrowPurchase)
	if !ok || !res.Applied || hooks.OnSettlement == nil {
		return
	}
	event := SettlementEvent{
		Hash:      common.Hash(res.Hash),
		Escrow:    purchase.Escrow,
		Buyer:     purchase.Account,
		CloseTime: res.CloseTime,
	}
	if res.Metadata != nil && res.Metadata.Delivered != nil {
		event.Price = *res.Metadata.Delivered
	}
	hooks.OnSettlement(event)
}
