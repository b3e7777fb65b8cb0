package monitor

import (
	"context"

	"lending/core"
	"lending/pkg/metrics"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const checkpointKey = "monitor_checkpoint"

// Config monitor settings
type Config struct {
	Batch int `json:"batch"`
}

// Monitor walks every position and reports the liquidatable ones
type Monitor struct {
	worker.CronWorker
	property property.Store
	users    core.UserStore
	ledger   core.LedgerService
	metrics  *metrics.LedgerMetrics
	cfg      Config

	// current pass
	scanned      int
	liquidatable int
}

// New new monitor
func New(
	property property.Store,
	users core.UserStore,
	ledger core.LedgerService,
	m *metrics.LedgerMetrics,
	cfg Config,
) *Monitor {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Monitor{
		CronWorker: worker.CronWorker{Schedule: "@every 1m"},
		property:   property,
		users:      users,
		ledger:     ledger,
		metrics:    m,
		cfg:        cfg,
	}
}

// Run run worker
func (w *Monitor) Run(ctx context.Context) error {
	return w.StartCron(ctx, w.onWork)
}

func (w *Monitor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor")
	ctx = logger.WithContext(ctx, log)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	next, err := w.scan(ctx, uint64(v.Int64()))
	if err != nil {
		return err
	}

	if err := w.property.Save(ctx, checkpointKey, int64(next)); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

// scan inspects one page of users after from and returns the next offset,
// 0 once the pass is complete
func (w *Monitor) scan(ctx context.Context, from uint64) (uint64, error) {
	log := logger.FromContext(ctx)

	users, err := w.users.List(ctx, from, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("users.List")
		return from, err
	}

	next := from
	for _, user := range users {
		next = user.ID
		w.scanned++

		if !user.HasBorrows() {
			continue
		}

		health, err := w.ledger.Health(ctx, user.Owner)
		if err != nil {
			log.WithError(err).WithField("owner", user.Owner).Warnln("ledger.Health")
			continue
		}

		if health.Liquidatable {
			w.liquidatable++
			log.WithField("owner", user.Owner).Infoln("liquidatable position")
		}
	}

	if len(users) < w.cfg.Batch {
		log.Infof("pass done, %d scanned, %d liquidatable", w.scanned, w.liquidatable)
		w.metrics.ObserveScan(w.scanned, w.liquidatable)
		w.scanned, w.liquidatable = 0, 0
		return 0, nil
	}

	return next, nil
}
