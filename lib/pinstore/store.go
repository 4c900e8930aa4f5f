package pinstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// Catalog is the full persisted collection: the materials themselves plus
// indexes derived from them on every merge.
type Catalog struct {
	Materials []Pin    `json:"materials"`
	Boards    []string `json:"boards"`
	LastSync  string   `json:"last_sync,omitempty"`
}

func emptyCatalog() Catalog {
	return Catalog{
		Materials: []Pin{},
		Boards:    []string{},
	}
}

// Merge reconciles incoming pins against the catalog, keyed by id.
// Unseen ids are appended in input order; seen ids replace the stored
// entry in place, keeping its position. Replacement is a full overwrite of
// the stored entry, so fields absent from a re-fetch (including tags) are
// dropped rather than preserved.
//
// After a non-empty merge the boards index is recomputed as the sorted
// distinct set of board names and the sync timestamp is stamped. Merging
// an empty slice mutates nothing, not even the timestamp, and returns 0.
func (c *Catalog) Merge(pins []Pin) int {
	if len(pins) == 0 {
		return 0
	}

	index := make(map[string]int, len(c.Materials))
	for i, m := range c.Materials {
		index[m.ID] = i
	}

	added := 0
	for _, pin := range pins {
		if pin.Tags == nil {
			pin.Tags = []string{}
		}
		if at, ok := index[pin.ID]; ok {
			c.Materials[at] = pin
			continue
		}
		index[pin.ID] = len(c.Materials)
		c.Materials = append(c.Materials, pin)
		added++
	}

	boardSet := map[string]bool{}
	boards := []string{}
	for _, m := range c.Materials {
		if boardSet[m.Board] {
			continue
		}
		boardSet[m.Board] = true
		boards = append(boards, m.Board)
	}
	slices.Sort(boards)
	c.Boards = boards

	c.LastSync = time.Now().Format(time.RFC3339)
	return added
}

// Store reads and writes a catalog as a single JSON document at a fixed
// path. It assumes a single writer; the file is not locked.
type Store struct {
	path string
}

func NewStore(path string) Store {
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

// Load returns the persisted catalog, or an empty skeleton when the file
// is missing or unparseable. A corrupt file is never repaired in place, it
// is simply superseded by the next successful Save.
func (s Store) Load(ctx context.Context) Catalog {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return emptyCatalog()
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read catalog, starting fresh", "path", s.path, "err", err)
		return emptyCatalog()
	}

	var catalog Catalog
	err = json.Unmarshal(raw, &catalog)
	if err != nil {
		slog.WarnContext(ctx, "catalog is corrupt, starting fresh", "path", s.path, "err", err)
		return emptyCatalog()
	}

	if catalog.Materials == nil {
		catalog.Materials = []Pin{}
	}
	if catalog.Boards == nil {
		catalog.Boards = []string{}
	}
	return catalog
}

// Save rewrites the whole document. The write goes through a temp file in
// the same directory followed by a rename so a crash mid-write never
// leaves a truncated catalog behind.
func (s Store) Save(ctx context.Context, catalog Catalog) error {
	if catalog.Materials == nil {
		catalog.Materials = []Pin{}
	}
	if catalog.Boards == nil {
		catalog.Boards = []string{}
	}

	encoded, err := json.MarshalIndent(catalog, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(encoded)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	err = os.Rename(tmp.Name(), s.path)
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	slog.InfoContext(
		ctx, "catalog saved",
		"path", s.path,
		"materials", len(catalog.Materials),
		"boards", len(catalog.Boards),
	)
	return nil
}
