package cashier

import (
	"context"
	"errors"

	"lending/core"
	"lending/pkg/metrics"
	"lending/service/transfer"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Cashier delivers the transfer outbox
type Cashier struct {
	worker.TickWorker
	transfers       core.TransferStore
	transferService core.TransferService
	ledger          core.LedgerService
	metrics         *metrics.LedgerMetrics
	cfg             Config
}

type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity"`
}

// New new cashier
func New(
	transfers core.TransferStore,
	transferService core.TransferService,
	ledger core.LedgerService,
	m *metrics.LedgerMetrics,
	cfg Config,
) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	cashier := Cashier{
		transfers:       transfers,
		transferService: transferService,
		ledger:          ledger,
		metrics:         m,
		cfg:             cfg,
	}

	return &cashier
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	f := w.sync
	if w.cfg.Capacity > 1 {
		f = w.parallel(w.cfg.Capacity)
	}

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx, f)
	})
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, [][]*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")
	ctx = logger.WithContext(ctx, log)

	transfers, err := w.transfers.Top(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("transfers.Top")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	batches := groupBatches(transfers)

	// the page may end inside the last batch
	if len(transfers) == w.cfg.Batch {
		last := batches[len(batches)-1]
		full, err := w.transfers.ListBatch(ctx, last[0].BatchID)
		if err != nil {
			log.WithError(err).Errorln("transfers.ListBatch")
			return err
		}

		batches[len(batches)-1] = full
	}

	return f(ctx, batches)
}

// groupBatches splits transfers by batch id, keeping the order of first appearance
func groupBatches(transfers []*core.Transfer) [][]*core.Transfer {
	var (
		batches [][]*core.Transfer
		index   = map[string]int{}
	)

	for _, t := range transfers {
		i, ok := index[t.BatchID]
		if !ok {
			i = len(batches)
			index[t.BatchID] = i
			batches = append(batches, nil)
		}

		batches[i] = append(batches[i], t)
	}

	return batches
}

// sync delivers batches one by one; a failed batch does not hold back the rest
func (w *Cashier) sync(ctx context.Context, batches [][]*core.Transfer) error {
	var first error
	for _, batch := range batches {
		if err := w.handleBatch(ctx, batch); err != nil && first == nil {
			first = err
		}
	}

	return first
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, batches [][]*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, batches [][]*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range batches {
			batch := batches[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleBatch(ctx, batch)
			})
		}

		return g.Wait()
	}
}

func (w *Cashier) handleBatch(ctx context.Context, batch []*core.Transfer) error {
	log := logger.FromContext(ctx).WithField("batch_id", batch[0].BatchID)

	outcome := "delivered"
	if err := w.transferService.Transfer(ctx, batch...); err != nil {
		if !transfer.IsRejected(err) {
			log.WithError(err).Errorln("transfers.Transfer")
			w.metrics.ObserveTransferBatch("failed")
			return err
		}

		log.WithError(err).Warnln("batch rejected, revert")
		if _, err := w.ledger.Revert(ctx, batch[0].BatchID); err != nil {
			log.WithError(err).Errorln("ledger.Revert")
			return err
		}

		outcome = "rejected"
	}

	ids := make([]uint64, 0, len(batch))
	for _, t := range batch {
		ids = append(ids, t.ID)
	}

	if err := w.transfers.Delete(ctx, ids...); err != nil {
		log.WithError(err).Errorln("transfers.Delete")
		return err
	}

	w.metrics.ObserveTransferBatch(outcome)
	return nil
}
