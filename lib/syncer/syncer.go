package syncer

import (
	"context"
	"log/slog"

	"pinsync/lib/pinstore"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("syncer")

type Board struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BoardFetcher is the page-fetching collaborator. pinterest.Client
// implements it.
type BoardFetcher interface {
	FetchBoard(ctx context.Context, boardURL, boardName string) ([]pinstore.Pin, error)
}

type BoardResult struct {
	Board string
	Pins  int
	Err   error
}

type Summary struct {
	Boards []BoardResult
	// pins mined across all boards this run
	Total int
	// materials that did not exist in the catalog before
	New int
	// false when the run produced nothing and the catalog was left alone
	Synced bool
}

// Run performs one sync: fetch and mine each board sequentially in list
// order, merge everything into the catalog, and persist. A board that
// fails contributes nothing but never aborts the run. A run that mines
// zero pins overall leaves the catalog file untouched, including its sync
// timestamp.
func Run(ctx context.Context, fetcher BoardFetcher, store pinstore.Store, boards []Board) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	summary := Summary{}
	var incoming []pinstore.Pin

	for _, board := range boards {
		if board.URL == "" {
			continue
		}
		slog.InfoContext(ctx, "fetching board", "name", board.Name, "url", board.URL)

		pins, err := fetcher.FetchBoard(ctx, board.URL, board.Name)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch board", "name", board.Name, "err", err)
			summary.Boards = append(summary.Boards, BoardResult{Board: board.Name, Err: err})
			continue
		}

		slog.InfoContext(ctx, "mined board", "name", board.Name, "pins", len(pins))
		summary.Boards = append(summary.Boards, BoardResult{Board: board.Name, Pins: len(pins)})
		incoming = append(incoming, pins...)
	}

	summary.Total = len(incoming)
	if len(incoming) == 0 {
		slog.WarnContext(ctx, "no pins found, catalog unchanged")
		return summary, nil
	}

	catalog := store.Load(ctx)
	summary.New = catalog.Merge(incoming)

	err := store.Save(ctx, catalog)
	if err != nil {
		return summary, err
	}

	summary.Synced = true
	slog.InfoContext(
		ctx, "sync complete",
		"total", summary.Total,
		"new", summary.New,
		"materials", len(catalog.Materials),
	)
	return summary, nil
}
