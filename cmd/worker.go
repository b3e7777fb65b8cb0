package cmd

import (
	"context"
	"sync"

	"lending/config"
	"lending/pkg/metrics"
	"lending/worker"
	"lending/worker/cashier"
	"lending/worker/monitor"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		m := metrics.Ledger()
		ledger := provideLedger(database)

		healthMonitor := monitor.New(
			providePropertyStore(database),
			provideUserStore(database),
			ledger,
			m,
			cfg.MonitorConfig(),
		)
		healthMonitor.Schedule = cfg.MonitorSchedule()

		workers := []worker.Worker{healthMonitor}

		if cfg.Transfer.Mode == config.TransferModeOutbox {
			c := cashier.New(provideTransferStore(database), provideTransferClient(), ledger, m, cfg.CashierConfig())
			c.Delay = cfg.CashierDelay()
			workers = append(workers, c)
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				if err := w.Run(ctx); err != nil && err != context.Canceled {
					log.WithError(err).Errorln("worker stopped")
				}
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
