package commands

import (
	"pinsync/lib/pinstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var boardsCatalogPath *string

func init() {
	boardsCatalogPath = boardsCmd.Flags().String("catalog", "data/library.json", "The catalog file to read.")
	rootCmd.AddCommand(boardsCmd)
}

var boardsCmd = &cobra.Command{
	Use:   "boards [--catalog <path/to/library.json>]",
	Short: "Lists the boards index with per-board material counts.",
	Run: func(cmd *cobra.Command, args []string) {
		catalog := pinstore.NewStore(*boardsCatalogPath).Load(cmd.Context())

		counts := map[string]int{}
		for _, m := range catalog.Materials {
			counts[m.Board]++
		}

		t := newTable()
		t.AppendHeader(table.Row{"Board", "Materials"})
		for _, board := range catalog.Boards {
			t.AppendRow(table.Row{board, counts[board]})
		}
		t.AppendFooter(table.Row{"Last sync", catalog.LastSync})
		t.Render()
	},
}
