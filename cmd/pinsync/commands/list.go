package commands

import (
	"os"
	"strings"

	"pinsync/lib/pinstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listCatalogPath *string

func init() {
	listCatalogPath = listCmd.Flags().String("catalog", "data/library.json", "The catalog file to read.")
	rootCmd.AddCommand(listCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var listCmd = &cobra.Command{
	Use:   "list [--catalog <path/to/library.json>]",
	Short: "Lists the materials in the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		catalog := pinstore.NewStore(*listCatalogPath).Load(cmd.Context())

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Title", "Board", "Tags"})
		for _, m := range catalog.Materials {
			t.AppendRow(table.Row{m.ID, m.Title, m.Board, strings.Join(m.Tags, ", ")})
		}
		t.Render()
	},
}
