package relationaldb

import (
	"context"
	"sync/atomic"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	escrowtx "github.com/LeJamon/goNFTize/internal/core/tx/escrow"
	"github.com/LeJamon/goNFTize/internal/core/tx/nftoken"
	"github.com/LeJamon/goNFTize/internal/core/tx/payment"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Recorder writes every applied transaction to a Repository. It is a
// tx.Observer; rejected submissions are not recorded.
type Recorder struct {
	repo     Repository
	log      *zap.Logger
	failures atomic.Uint64
}

var _ tx.Observer = (*Recorder)(nil)

func NewRecorder(repo Repository, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{repo: repo, log: log.Named("history")}
}

// Failures returns how many applied transactions could not be recorded.
func (r *Recorder) Failures() uint64 {
	return r.failures.Load()
}

func (r *Recorder) TransactionApplied(ctx context.Context, t tx.Transaction, res tx.ApplyResult) {
	if !res.Applied {
		return
	}
	rec, err := NewRecord(t, res)
	if err == nil {
		err = r.repo.SaveTransaction(ctx, rec)
	}
	if err != nil {
		r.failures.Add(1)
		r.log.Error("failed to record transaction",
			zap.Stringer("type", t.TxType()),
			zap.String("hash", common.Hash(res.Hash).Hex()),
			zap.Error(err))
		return
	}
	r.log.Debug("recorded transaction",
		zap.Stringer("type", t.TxType()),
		zap.String("id", rec.ID.String()))
}

// NewRecord builds the history record of an applied transaction.
func NewRecord(t tx.Transaction, res tx.ApplyResult) (*TransactionRecord, error) {
	raw, err := tx.ToJSON(t)
	if err != nil {
		return nil, err
	}
	c := t.GetCommon()
	rec := &TransactionRecord{
		Hash:      common.Hash(res.Hash),
		Account:   c.Account,
		Sequence:  res.Sequence,
		Type:      t.TxType().String(),
		Result:    res.Result.String(),
		Subject:   subjectOf(t, res),
		CloseTime: res.CloseTime,
		Memo:      c.Memo,
		Raw:       raw,
	}
	if res.Metadata != nil && res.Metadata.Delivered != nil {
		delivered := *res.Metadata.Delivered
		rec.Delivered = &delivered
	}
	return rec, nil
}

// subjectOf returns the account a transaction acted on.
func subjectOf(t tx.Transaction, res tx.ApplyResult) common.Address {
	if res.Metadata != nil && res.Metadata.Created != (common.Address{}) {
		return res.Metadata.Created
	}
	switch v := t.(type) {
	case *escrowtx.EscrowDeposit:
		return v.Escrow
	case *escrowtx.EscrowPurchase:
		return v.Escrow
	case *nftoken.TokenMint:
		return v.Registry
	case *nftoken.TokenApprove:
		return v.Registry
	case *nftoken.TokenTransfer:
		return v.Registry
	case *payment.Payment:
		return v.Destination
	}
	return common.Address{}
}
