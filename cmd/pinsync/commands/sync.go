package commands

import (
	"context"
	"log/slog"

	"pinsync/lib/pinstore"
	"pinsync/lib/scrapers/pinterest"
	"pinsync/lib/serviceutil"
	"pinsync/lib/syncer"
	"pinsync/lib/telemetry"

	"github.com/spf13/cobra"
)

var catalogPath *string

func init() {
	catalogPath = syncCmd.Flags().String("catalog", "data/library.json", "The catalog file to merge into.")
	rootCmd.AddCommand(syncCmd)
}

func runSync(ctx context.Context) syncer.Summary {
	cfg, err := loadConfig()
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	if len(cfg.Boards) == 0 {
		slog.Warn("no boards configured, catalog left as-is")
		slog.Warn("add boards to config.json5 or set the PINTEREST_BOARDS environment variable")
		slog.Warn(`example: {"boards": [{"name": "My Board", "url": "https://pinterest.com/user/board"}]}`)
		return syncer.Summary{}
	}

	client, err := pinterest.NewClient(pinterest.ClientOptions{
		ExcludedKeywords: cfg.ExcludedKeywords,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}

	summary, err := syncer.Run(ctx, client, pinstore.NewStore(*catalogPath), cfg.Boards)
	if err != nil {
		serviceutil.Fatal("failed to sync", err)
	}
	return summary
}

var syncCmd = &cobra.Command{
	Use:   "sync [--catalog <path/to/library.json>]",
	Short: "Fetches every configured board once and merges the results into the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "pinsync")
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}
		defer tel.Shutdown(context.Background())

		summary := runSync(ctx)
		if summary.Synced {
			slog.Info("new materials added", "count", summary.New)
		}
	},
}
