package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker background job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a tick function until the context ends. A tick that
// returns an error, including "EOF" for no work, waits ErrDelay before the
// next one, otherwise Delay.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick blocks running onTick
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	if errDelay <= 0 {
		errDelay = time.Second
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onTick(ctx); err != nil {
				timer.Reset(errDelay)
			} else {
				timer.Reset(delay)
			}
		}
	}
}

// CronWorker runs a job on a cron Schedule like "@every 1m". A run that is
// still busy when the next one is due makes the next one skip.
type CronWorker struct {
	Schedule string
}

// StartCron blocks running onWork on schedule until the context ends
func (w *CronWorker) StartCron(ctx context.Context, onWork func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(log)),
		cron.SkipIfStillRunning(cron.PrintfLogger(log)),
	))

	if _, err := c.AddFunc(w.Schedule, func() {
		_ = onWork(ctx)
	}); err != nil {
		log.WithError(err).Errorln("cron.AddFunc", w.Schedule)
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
