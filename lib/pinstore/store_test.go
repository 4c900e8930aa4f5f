package pinstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testPin(id, board string) Pin {
	return Pin{
		ID:        id,
		Title:     "Pin " + id,
		ImageURL:  "https://i.pinimg.com/736x/" + id + ".jpg",
		Tags:      []string{},
		SourceURL: "https://pinterest.com/pin/" + id,
		Board:     board,
	}
}

func TestMergeAppendsNewPins(t *testing.T) {
	catalog := Catalog{}
	added := catalog.Merge([]Pin{
		testPin("pin_1", "Wood"),
		testPin("pin_2", "Stone"),
	})

	require.Equal(t, 2, added)
	require.Len(t, catalog.Materials, 2)
	require.Equal(t, "pin_1", catalog.Materials[0].ID)
	require.Equal(t, "pin_2", catalog.Materials[1].ID)
	require.Equal(t, []string{"Stone", "Wood"}, catalog.Boards)

	lastSync, err := time.Parse(time.RFC3339, catalog.LastSync)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), lastSync, time.Minute)
}

func TestMergeIsIdempotent(t *testing.T) {
	pins := []Pin{
		testPin("pin_1", "Wood"),
		testPin("pin_2", "Wood"),
	}

	catalog := Catalog{}
	require.Equal(t, 2, catalog.Merge(pins))
	before := append([]Pin{}, catalog.Materials...)

	require.Equal(t, 0, catalog.Merge(pins))
	require.Empty(t, cmp.Diff(before, catalog.Materials))
}

func TestMergeNeverDuplicatesIds(t *testing.T) {
	catalog := Catalog{}
	catalog.Merge([]Pin{testPin("pin_1", "Wood")})
	catalog.Merge([]Pin{
		testPin("pin_1", "Wood"),
		testPin("pin_1", "Stone"),
		testPin("pin_2", "Stone"),
	})

	seen := map[string]bool{}
	for _, m := range catalog.Materials {
		require.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
	require.Len(t, catalog.Materials, 2)
}

func TestMergeOverwritesExisting(t *testing.T) {
	catalog := Catalog{}
	enriched := testPin("pin_2", "Wood")
	enriched.Tags = []string{"teak", "furniture"}
	catalog.Merge([]Pin{testPin("pin_1", "Wood"), enriched})

	update := testPin("pin_2", "Stone")
	update.Title = "Updated"
	require.Equal(t, 0, catalog.Merge([]Pin{update}))

	// position is stable, content is a full overwrite: the previously
	// stored tags are gone because the re-fetch carried none
	require.Len(t, catalog.Materials, 2)
	require.Equal(t, "pin_2", catalog.Materials[1].ID)
	require.Equal(t, "Updated", catalog.Materials[1].Title)
	require.Equal(t, "Stone", catalog.Materials[1].Board)
	require.Empty(t, catalog.Materials[1].Tags)
	require.Equal(t, []string{"Stone", "Wood"}, catalog.Boards)
}

func TestMergeEmptyIsNoOp(t *testing.T) {
	catalog := Catalog{}
	catalog.Merge([]Pin{testPin("pin_1", "Wood")})
	lastSync := catalog.LastSync
	before := append([]Pin{}, catalog.Materials...)

	require.Equal(t, 0, catalog.Merge(nil))
	require.Equal(t, 0, catalog.Merge([]Pin{}))
	require.Equal(t, lastSync, catalog.LastSync)
	require.Empty(t, cmp.Diff(before, catalog.Materials))
}

func TestMergeRecomputesBoards(t *testing.T) {
	catalog := Catalog{
		// a stale, hand-edited index should not survive a merge
		Boards: []string{"Bogus"},
	}
	catalog.Merge([]Pin{
		testPin("pin_1", "Zebra"),
		testPin("pin_2", "Apple"),
		testPin("pin_3", "Apple"),
	})
	require.Equal(t, []string{"Apple", "Zebra"}, catalog.Boards)
}

func TestMergeNormalizesNilTags(t *testing.T) {
	pin := testPin("pin_1", "Wood")
	pin.Tags = nil

	catalog := Catalog{}
	catalog.Merge([]Pin{pin})
	require.NotNil(t, catalog.Materials[0].Tags)

	encoded, err := json.Marshal(catalog.Materials[0])
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"tags":[]`)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "data", "library.json"))

	catalog := store.Load(ctx)
	require.Empty(t, catalog.Materials)
	require.Empty(t, catalog.LastSync)

	catalog.Merge([]Pin{testPin("pin_1", "Wood")})
	require.NoError(t, store.Save(ctx, catalog))

	loaded := store.Load(ctx)
	require.Empty(t, cmp.Diff(catalog, loaded))
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	catalog := NewStore(path).Load(context.Background())
	require.Empty(t, catalog.Materials)
	require.Empty(t, catalog.Boards)
	require.Empty(t, catalog.LastSync)

	// a corrupt file is only replaced by the next save, never repaired
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{not json", string(raw))
}

func TestStoreSaveIsWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "library.json"))

	first := Catalog{}
	first.Merge([]Pin{testPin("pin_1", "Wood"), testPin("pin_2", "Wood")})
	require.NoError(t, store.Save(ctx, first))

	second := Catalog{}
	second.Merge([]Pin{testPin("pin_3", "Stone")})
	require.NoError(t, store.Save(ctx, second))

	loaded := store.Load(ctx)
	require.Len(t, loaded.Materials, 1)
	require.Equal(t, "pin_3", loaded.Materials[0].ID)
}
