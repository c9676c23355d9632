package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"blue/core"
	"blue/pkg/logger"
	"blue/worker/monitor"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run the liquidation monitor",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logger.FromContext(ctx).WithField("cmd", "worker")

		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		s := provideStack(snapshotPath)
		defer s.Close()

		w, err := monitor.New(cfg.Monitor.Schedule, monitoredMarkets(provideConfig()), s.markets)
		if err != nil {
			log.WithError(err).Fatalln("monitor.New")
		}

		if once, _ := cmd.Flags().GetBool("once"); once {
			alerts, err := w.Scan(ctx, timestampFlag(cmd))
			if err != nil {
				log.WithError(err).Fatalln("monitor.Scan")
			}

			if err := printResult(cmd.OutOrStdout(), alerts); err != nil {
				logrus.WithError(err).Errorln("print alerts")
			}
			return
		}

		_ = w.Start()
		log.Infoln("monitor started with schedule", cfg.Monitor.Schedule)

		<-ctx.Done()
		_ = w.Stop()
	},
}

// registry markets then monitor markets, without duplicates
func monitoredMarkets(cfg *core.Config) []core.MarketID {
	var (
		ids  []core.MarketID
		seen = map[core.MarketID]bool{}
	)

	add := func(id core.MarketID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, params := range cfg.Registry.Markets {
		add(params.ID())
	}

	for _, id := range cfg.Monitor.Markets {
		add(id)
	}

	return ids
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().String("snapshot", "", "snapshot file, default is the config snapshot")
	workerCmd.Flags().Bool("once", false, "scan once and print the alerts")
	workerCmd.Flags().Uint64("timestamp", 0, "unix timestamp of a single scan, default now")
}
