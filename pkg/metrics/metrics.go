package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics ledger operation counters
type LedgerMetrics struct {
	operations   *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	transfers    *prometheus.CounterVec
	scanned      prometheus.Counter
	liquidatable prometheus.Gauge
}

var (
	ledgerOnce     sync.Once
	ledgerRegistry *LedgerMetrics
)

// Ledger process wide ledger metrics, registered on first use
func Ledger() *LedgerMetrics {
	ledgerOnce.Do(func() {
		ledgerRegistry = &LedgerMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lending_operations_total",
				Help: "Ledger operations by action and outcome.",
			}, []string{"action", "outcome"}),
			durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "lending_operation_duration_seconds",
				Help:    "Ledger operation latency by action.",
				Buckets: prometheus.DefBuckets,
			}, []string{"action"}),
			transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "lending_transfers_delivered_total",
				Help: "Outbox transfer batches by outcome.",
			}, []string{"outcome"}),
			scanned: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lending_monitor_users_scanned_total",
				Help: "Positions inspected by the health monitor.",
			}),
			liquidatable: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "lending_monitor_liquidatable_positions",
				Help: "Liquidatable positions found in the last monitor pass.",
			}),
		}
		prometheus.MustRegister(
			ledgerRegistry.operations,
			ledgerRegistry.durations,
			ledgerRegistry.transfers,
			ledgerRegistry.scanned,
			ledgerRegistry.liquidatable,
		)
	})
	return ledgerRegistry
}

// ObserveOperation count an operation; outcome is "ok" or the error kind name
func (m *LedgerMetrics) ObserveOperation(action, outcome string, started time.Time) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(action, outcome).Inc()
	m.durations.WithLabelValues(action).Observe(time.Since(started).Seconds())
}

func (m *LedgerMetrics) ObserveTransferBatch(outcome string) {
	if m == nil {
		return
	}

	m.transfers.WithLabelValues(outcome).Inc()
}

func (m *LedgerMetrics) ObserveScan(scanned, liquidatable int) {
	if m == nil {
		return
	}

	m.scanned.Add(float64(scanned))
	m.liquidatable.Set(float64(liquidatable))
}
