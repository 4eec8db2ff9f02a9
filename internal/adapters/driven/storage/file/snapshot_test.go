package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
)

var snapNow = time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airports.json")
	return NewSnapshotStore(path, DefaultTTL, func() time.Time { return snapNow })
}

func sampleAirports() []domain.Airport {
	return []domain.Airport{
		{
			Code:       "s9600213",
			Title:      "Шереметьево",
			Settlement: "Москва",
			Region:     "Москва и Московская область",
			Country:    "Россия",
			Aliases:    []string{"москва", "шереметьево"},
		},
	}
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, driven.AirportSnapshot{Airports: sampleAirports()})
	require.NoError(t, err)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Airports, 1)
	assert.Equal(t, "Шереметьево", snap.Airports[0].Title)
	assert.Equal(t, snapNow, snap.CapturedAt)
}

func TestSnapshotStore_FileFormat(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), driven.AirportSnapshot{Airports: sampleAirports()}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"1.0"`, string(raw["version"]))
	assert.Contains(t, string(raw["updated_at"]), "Z")
	assert.Contains(t, string(raw["airports"]), "Шереметьево")
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotStore_LoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{truncated"), 0o644))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}

func TestSnapshotStore_LoadUnknownVersion(t *testing.T) {
	store := newTestStore(t)
	body := `{"version": "2.0", "updated_at": "2026-02-01T00:00:00Z", "airports": []}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(body), 0o644))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}

func TestSnapshotStore_LoadBadTimestamp(t *testing.T) {
	store := newTestStore(t)
	body := `{"version": "1.0", "updated_at": "yesterday", "airports": []}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(body), 0o644))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}

func TestSnapshotStore_StalenessBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.json")
	ctx := context.Background()

	// Exactly at the TTL boundary the snapshot is still served.
	atBoundary := NewSnapshotStore(path, DefaultTTL, func() time.Time { return snapNow })
	require.NoError(t, atBoundary.Save(ctx, driven.AirportSnapshot{
		CapturedAt: snapNow.Add(-DefaultTTL),
		Airports:   sampleAirports(),
	}))

	snap, err := atBoundary.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Airports, 1)

	// One second past the boundary it is stale.
	pastBoundary := NewSnapshotStore(path, DefaultTTL, func() time.Time { return snapNow.Add(time.Second) })
	_, err = pastBoundary.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotStale)
}

func TestSnapshotStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "cache", "airports.json")
	store := NewSnapshotStore(path, 0, nil)

	err := store.Save(context.Background(), driven.AirportSnapshot{Airports: sampleAirports()})

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestSnapshotStore_SaveReplacesAtomically(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, driven.AirportSnapshot{Airports: sampleAirports()}))
	require.NoError(t, store.Save(ctx, driven.AirportSnapshot{Airports: nil}))

	// No temp files left behind after the rename.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Airports)
}
