package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"pinsync/lib/configutil"
	"pinsync/lib/syncer"
	"pinsync/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	Boards []syncer.Board `json:"boards"`
	// reserved metadata carried by existing configs, not read by the miner
	TagMappings      map[string][]string `json:"tag_mappings"`
	ExcludedKeywords []string            `json:"excluded_keywords"`
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "pinsync",
	Short: "pinsync mines pins from public board pages into a local material catalog.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads config.json5 (plus config.local.json5 overrides). A
// missing config is not fatal, it just produces an empty board list. The
// PINTEREST_BOARDS environment variable (a json array of board urls)
// replaces the configured list entirely, with auto-generated names.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if os.IsNotExist(err) {
		slog.Warn("no config.json5 found, using defaults")
		cfg = Config{}
	} else if err != nil {
		return Config{}, err
	}

	envBoards, ok := os.LookupEnv("PINTEREST_BOARDS")
	if ok {
		var urls []string
		err := json.Unmarshal([]byte(envBoards), &urls)
		if err != nil {
			slog.Warn("ignoring unparseable PINTEREST_BOARDS", "err", err)
			return cfg, nil
		}
		boards := make([]syncer.Board, len(urls))
		for i, url := range urls {
			boards[i] = syncer.Board{
				Name: fmt.Sprintf("Board %d", i+1),
				URL:  url,
			}
		}
		cfg.Boards = boards
	}

	return cfg, nil
}
