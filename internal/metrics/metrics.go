// Package metrics exports transaction and settlement counters to
// Prometheus.
package metrics

import (
	"context"

	"github.com/LeJamon/goNFTize/internal/core/tx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nftized"

// Metrics counts engine submissions. It is a tx.Observer.
type Metrics struct {
	Transactions *prometheus.CounterVec
	Settlements  prometheus.Counter
	Volume       prometheus.Counter
	Deposits     prometheus.Counter
}

var _ tx.Observer = (*Metrics)(nil)

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests and prometheus.DefaultRegisterer in the node.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Submitted transactions by type and result code",
			},
			[]string{"type", "result"},
		),
		Settlements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_settlements_total",
			Help:      "Escrow sales finalized",
		}),
		Volume: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_volume",
			Help:      "Sum of settled purchase prices, in base units",
		}),
		Deposits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_deposits_total",
			Help:      "Earnest deposits accepted",
		}),
	}
}

func (m *Metrics) TransactionApplied(_ context.Context, t tx.Transaction, res tx.ApplyResult) {
	m.Transactions.WithLabelValues(t.TxType().String(), res.Result.String()).Inc()
	if !res.Applied {
		return
	}
	switch t.TxType() {
	case tx.TypeEscrowPurchase:
		m.Settlements.Inc()
		if res.Metadata != nil && res.Metadata.Delivered != nil {
			m.Volume.Add(float64(res.Metadata.Delivered.Units()))
		}
	case tx.TypeEscrowDeposit:
		m.Deposits.Inc()
	}
}
