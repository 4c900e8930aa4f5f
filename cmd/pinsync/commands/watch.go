package commands

import (
	"context"
	"log/slog"

	"pinsync/lib/serviceutil"
	"pinsync/lib/telemetry"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchSpec *string

func init() {
	watchSpec = watchCmd.Flags().String("cron", "0 */6 * * *", "The cron schedule to sync on.")
	watchCmd.Flags().AddFlag(syncCmd.Flags().Lookup("catalog"))
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--cron <spec>] [--catalog <path/to/library.json>]",
	Short: "Runs sync on a cron schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := serviceutil.SignalContext()

		tel, err := telemetry.SetupFromEnv(ctx, "pinsync-watch")
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)

		cronner := cron.New()
		_, err = cronner.AddFunc(*watchSpec, func() {
			summary := runSync(ctx)
			if summary.Synced {
				slog.Info("scheduled sync finished", "new", summary.New, "total", summary.Total)
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid cron spec", err)
		}

		slog.Info("watching", "cron", *watchSpec)
		cronner.Start()
		<-ctx.Done()
		cronner.Stop()
	},
}
