// Package sale runs a complete escrowed token sale against a ledger
// service: fund the parties, deploy the collection as the seller, open and
// approve the escrow, deposit the earnest and submit the purchase.
package sale

import (
	"context"
	"fmt"

	"github.com/LeJamon/goNFTize/internal/config"
	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger/service"
	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/LeJamon/goNFTize/internal/core/tx/escrow"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/LeJamon/goNFTize/internal/core/tx/payment"
	"github.com/LeJamon/goNFTize/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Plan is a resolved sale
type Plan struct {
	// Master funds the seller and the buyer
	Master  common.Address
	Seller  common.Address
	Buyer   common.Address
	Creator common.Address

	Collection string
	TokenID    uint64

	Price   amount.Amount
	Earnest amount.Amount

	// Paid is attached to the purchase
	Paid    amount.Amount
	Funding amount.Amount

	CreatorShare   uint8
	EnforceBuyer   bool
	RequireEarnest bool
}

// PlanFromConfig resolves the accounts and amounts of a [sale] section.
func PlanFromConfig(cfg *config.SaleConfig, master common.Address) (*Plan, error) {
	amounts, err := cfg.Amounts()
	if err != nil {
		return nil, err
	}
	p := &Plan{
		Master:         master,
		Collection:     cfg.Registry,
		TokenID:        cfg.TokenID,
		Price:          amounts.Price,
		Earnest:        amounts.Earnest,
		Paid:           amounts.Paid,
		Funding:        amounts.Funding,
		CreatorShare:   cfg.CreatorShare,
		EnforceBuyer:   cfg.EnforceBuyer,
		RequireEarnest: cfg.RequireEarnest,
	}
	for _, acct := range []struct {
		name string
		in   string
		out  *common.Address
	}{
		{"seller", cfg.Seller, &p.Seller},
		{"buyer", cfg.Buyer, &p.Buyer},
		{"creator", cfg.Creator, &p.Creator},
	} {
		if *acct.out, err = crypto.ResolveAccount(acct.in); err != nil {
			return nil, fmt.Errorf("%s: %w", acct.name, err)
		}
	}
	return p, nil
}

// Step is one submitted transaction
type Step struct {
	Name   string
	Result tx.ApplyResult
}

// Snapshot holds the balances the sale moves and the token owner
type Snapshot struct {
	Seller  amount.Amount
	Buyer   amount.Amount
	Creator amount.Amount
	Escrow  amount.Amount
	Owner   common.Address
}

// Report is the outcome of a sale
type Report struct {
	Registry common.Address
	Escrow   common.Address
	Steps    []Step

	// Before is taken once the parties are funded and the escrow is open,
	// After once the purchase was submitted.
	Before Snapshot
	After  Snapshot

	// Settled is false when the purchase was refused; Purchase holds the
	// refusal.
	Settled  bool
	Purchase tx.ApplyResult
}

// StepError is returned when a setup transaction is not applied
type StepError struct {
	Step   string
	Result tx.ApplyResult
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Step, e.Result.Result, e.Result.Message)
}

// Runner submits the transactions of a Plan
type Runner struct {
	svc *service.Service
	log *zap.Logger
}

// NewRunner creates a runner over a started ledger service
func NewRunner(svc *service.Service, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{svc: svc, log: log.Named("sale")}
}

// Run executes the plan. Setup failures return a *StepError; a refused
// purchase is reported with Settled false and no error.
func (r *Runner) Run(ctx context.Context, p *Plan) (*Report, error) {
	report := &Report{}

	for _, acct := range []common.Address{p.Seller, p.Buyer} {
		if p.Funding.IsZero() {
			break
		}
		if _, err := r.submit(ctx, report, "fund "+acct.Hex(), payment.NewPayment(p.Master, acct, p.Funding)); err != nil {
			return report, err
		}
	}

	res, err := r.submit(ctx, report, "deploy registry", nftoken.NewRegistryCreate(p.Seller, p.Collection, p.TokenID))
	if err != nil {
		return report, err
	}
	report.Registry = res.Metadata.Created

	create := escrow.NewEscrowCreate(p.Seller, report.Registry, p.TokenID, p.Price, p.Earnest, p.Creator)
	create.CreatorShare = &p.CreatorShare
	create.EnforceBuyer = &p.EnforceBuyer
	create.RequireEarnest = p.RequireEarnest
	if res, err = r.submit(ctx, report, "deploy escrow", create); err != nil {
		return report, err
	}
	report.Escrow = res.Metadata.Created

	if _, err := r.submit(ctx, report, "approve escrow", nftoken.NewTokenApprove(p.Seller, report.Registry, p.TokenID, report.Escrow)); err != nil {
		return report, err
	}

	if report.Before, err = r.snapshot(p, report); err != nil {
		return report, err
	}

	if !p.Earnest.IsZero() {
		if _, err := r.submit(ctx, report, "deposit earnest", escrow.NewEscrowDeposit(p.Buyer, report.Escrow, p.Earnest)); err != nil {
			return report, err
		}
	}

	purchase, err := r.svc.Submit(ctx, escrow.NewEscrowPurchase(p.Buyer, report.Escrow, p.Paid))
	if err != nil {
		return report, err
	}
	report.Steps = append(report.Steps, Step{Name: "submit purchase", Result: purchase})
	report.Purchase = purchase
	report.Settled = purchase.Applied
	if !report.Settled {
		r.log.Warn("purchase refused",
			zap.Stringer("escrow", report.Escrow),
			zap.Stringer("result", purchase.Result))
	}

	if report.After, err = r.snapshot(p, report); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Runner) submit(ctx context.Context, report *Report, name string, t tx.Transaction) (tx.ApplyResult, error) {
	res, err := r.svc.Submit(ctx, t)
	if err != nil {
		return res, err
	}
	report.Steps = append(report.Steps, Step{Name: name, Result: res})
	if !res.Applied {
		return res, &StepError{Step: name, Result: res}
	}
	r.log.Debug("step applied", zap.String("step", name), zap.Uint64("sequence", res.Sequence))
	return res, nil
}

func (r *Runner) snapshot(p *Plan, report *Report) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	for _, b := range []struct {
		addr common.Address
		out  *amount.Amount
	}{
		{p.Seller, &s.Seller},
		{p.Buyer, &s.Buyer},
		{p.Creator, &s.Creator},
		{report.Escrow, &s.Escrow},
	} {
		if *b.out, err = r.svc.GetBalance(b.addr); err != nil {
			return s, err
		}
	}
	s.Owner, err = r.svc.GetOwner(report.Registry, p.TokenID)
	return s, err
}
