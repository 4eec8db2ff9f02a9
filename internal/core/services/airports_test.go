package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCatalog implements driven.StationCatalog for testing.
type mockCatalog struct {
	airports []domain.Airport
	fetchErr error

	calls atomic.Int32
}

func (m *mockCatalog) FetchAirports(_ context.Context) ([]domain.Airport, error) {
	m.calls.Add(1)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.airports, nil
}

// mockSnapshotStore implements driven.SnapshotStore for testing.
type mockSnapshotStore struct {
	mu      sync.Mutex
	snap    *driven.AirportSnapshot
	loadErr error
	saveErr error
	saved   int
}

func (m *mockSnapshotStore) Load(_ context.Context) (*driven.AirportSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snap == nil {
		return nil, domain.ErrNotFound
	}
	return m.snap, nil
}

func (m *mockSnapshotStore) Save(_ context.Context, snap driven.AirportSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = &snap
	m.saved++
	return nil
}

func testAirports() []domain.Airport {
	return []domain.Airport{
		{
			Code:       "SVO",
			Title:      "Шереметьево",
			Settlement: "Москва",
			Region:     "Москва и Московская область",
			Country:    "Россия",
			Aliases:    []string{"москва", "шереметьево", "москва шереметьево", "svo", "sheremetyevo", "moscow"},
		},
		{
			Code:       "DME",
			Title:      "Домодедово",
			Settlement: "Москва",
			Region:     "Москва и Московская область",
			Country:    "Россия",
			Aliases:    []string{"москва", "домодедово", "москва домодедово", "dme", "moscow"},
		},
		{
			Code:       "LED",
			Title:      "Пулково",
			Settlement: "Санкт-Петербург",
			Region:     "Санкт-Петербург и Ленинградская область",
			Country:    "Россия",
			Aliases:    []string{"санкт-петербург", "пулково", "led", "питер"},
		},
		{
			Code:       "AER",
			Title:      "Сочи",
			Settlement: "Сочи",
			Region:     "Краснодарский край",
			Country:    "Россия",
			Aliases:    []string{"сочи", "aer", "adler", "sochi"},
		},
	}
}

func loadedDirectory(t *testing.T) *Directory {
	t.Helper()
	directory := NewDirectory(&mockCatalog{airports: testAirports()}, nil)
	require.NoError(t, directory.EnsureLoaded(context.Background()))
	return directory
}

// --- Loading ---

func TestDirectory_EnsureLoaded_FromCatalog(t *testing.T) {
	catalog := &mockCatalog{airports: testAirports()}
	directory := NewDirectory(catalog, nil)

	err := directory.EnsureLoaded(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, directory.Len())
	assert.Equal(t, int32(1), catalog.calls.Load())
}

func TestDirectory_EnsureLoaded_Idempotent(t *testing.T) {
	catalog := &mockCatalog{airports: testAirports()}
	directory := NewDirectory(catalog, nil)
	ctx := context.Background()

	require.NoError(t, directory.EnsureLoaded(ctx))
	require.NoError(t, directory.EnsureLoaded(ctx))
	require.NoError(t, directory.EnsureLoaded(ctx))

	assert.Equal(t, int32(1), catalog.calls.Load())
}

func TestDirectory_EnsureLoaded_Concurrent(t *testing.T) {
	catalog := &mockCatalog{airports: testAirports()}
	directory := NewDirectory(catalog, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, directory.EnsureLoaded(ctx))
		}()
	}
	wg.Wait()

	// All concurrent callers collapse into a single fetch.
	assert.Equal(t, int32(1), catalog.calls.Load())
	assert.Equal(t, 4, directory.Len())
}

func TestDirectory_EnsureLoaded_PrefersSnapshot(t *testing.T) {
	catalog := &mockCatalog{airports: testAirports()}
	snapshots := &mockSnapshotStore{snap: &driven.AirportSnapshot{
		CapturedAt: time.Now(),
		Airports:   testAirports()[:2],
	}}
	directory := NewDirectory(catalog, snapshots)

	err := directory.EnsureLoaded(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, directory.Len())
	assert.Equal(t, int32(0), catalog.calls.Load(), "snapshot hit must not hit the catalog")
}

func TestDirectory_EnsureLoaded_SnapshotMissFallsBack(t *testing.T) {
	for _, loadErr := range []error{domain.ErrNotFound, domain.ErrSnapshotStale, domain.ErrSnapshotInvalid} {
		catalog := &mockCatalog{airports: testAirports()}
		snapshots := &mockSnapshotStore{loadErr: loadErr}
		directory := NewDirectory(catalog, snapshots)

		err := directory.EnsureLoaded(context.Background())

		require.NoError(t, err, "load error %v", loadErr)
		assert.Equal(t, 4, directory.Len(), "load error %v", loadErr)
		assert.Equal(t, int32(1), catalog.calls.Load(), "load error %v", loadErr)
	}
}

func TestDirectory_EnsureLoaded_SavesSnapshotAfterFetch(t *testing.T) {
	snapshots := &mockSnapshotStore{loadErr: domain.ErrNotFound}
	directory := NewDirectory(&mockCatalog{airports: testAirports()}, snapshots)

	require.NoError(t, directory.EnsureLoaded(context.Background()))

	require.NotNil(t, snapshots.snap)
	assert.Len(t, snapshots.snap.Airports, 4)
}

func TestDirectory_EnsureLoaded_SnapshotSaveFailureIsNotFatal(t *testing.T) {
	snapshots := &mockSnapshotStore{loadErr: domain.ErrNotFound, saveErr: errors.New("disk full")}
	directory := NewDirectory(&mockCatalog{airports: testAirports()}, snapshots)

	err := directory.EnsureLoaded(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, directory.Len())
}

func TestDirectory_EnsureLoaded_CatalogError(t *testing.T) {
	catalog := &mockCatalog{fetchErr: errors.New("network unreachable")}
	directory := NewDirectory(catalog, nil)

	err := directory.EnsureLoaded(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load airport catalog")
	assert.Equal(t, 0, directory.Len())
}

func TestDirectory_Reload_RefreshesFromCatalog(t *testing.T) {
	catalog := &mockCatalog{airports: testAirports()}
	snapshots := &mockSnapshotStore{snap: &driven.AirportSnapshot{
		CapturedAt: time.Now(),
		Airports:   testAirports()[:1],
	}}
	directory := NewDirectory(catalog, snapshots)
	ctx := context.Background()

	require.NoError(t, directory.EnsureLoaded(ctx))
	require.Equal(t, 1, directory.Len())

	require.NoError(t, directory.Reload(ctx))

	assert.Equal(t, 4, directory.Len())
	assert.Equal(t, int32(1), catalog.calls.Load())
	assert.Len(t, snapshots.snap.Airports, 4, "reload must persist a fresh snapshot")
}

// --- Lookups ---

func TestDirectory_FindBest_BySettlement(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindBest("Москва")

	require.NotNil(t, got)
	// Two Moscow airports; catalog order wins.
	assert.Equal(t, "SVO", got.Code)
}

func TestDirectory_FindBest_ByTitle(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindBest("Пулково")

	require.NotNil(t, got)
	assert.Equal(t, "LED", got.Code)
}

func TestDirectory_FindBest_ByAlias(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindBest("питер")

	require.NotNil(t, got)
	assert.Equal(t, "LED", got.Code)
}

func TestDirectory_FindBest_Transliterated(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindBest("moscow")

	require.NotNil(t, got)
	assert.Equal(t, "SVO", got.Code)
}

func TestDirectory_FindBest_FuzzyTypo(t *testing.T) {
	directory := loadedDirectory(t)

	// One substitution off "москва": no exact stage matches, fuzzy catches it.
	got := directory.FindBest("масква")

	require.NotNil(t, got)
	assert.Equal(t, "Москва", got.Settlement)
}

func TestDirectory_FindBest_Miss(t *testing.T) {
	directory := loadedDirectory(t)

	assert.Nil(t, directory.FindBest("атлантида"))
	assert.Nil(t, directory.FindBest(""))
	assert.Nil(t, directory.FindBest("   "))
}

func TestDirectory_FindBest_NotLoaded(t *testing.T) {
	directory := NewDirectory(&mockCatalog{}, nil)

	assert.Nil(t, directory.FindBest("москва"))
}

func TestDirectory_FindCandidates_SettlementReturnsAllStations(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindCandidates("москва", 5)

	require.Len(t, got, 2)
	assert.Equal(t, "SVO", got[0].Code)
	assert.Equal(t, "DME", got[1].Code)
}

func TestDirectory_FindCandidates_LimitTruncates(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindCandidates("москва", 1)

	require.Len(t, got, 1)
	assert.Equal(t, "SVO", got[0].Code)
}

func TestDirectory_FindCandidates_DefaultLimit(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.FindCandidates("москва", 0)

	assert.Len(t, got, 2)
}

func TestDirectory_FindCandidates_ExactOutranksFuzzy(t *testing.T) {
	directory := loadedDirectory(t)

	// "сочи" matches AER exactly; fuzzy scores against other records must not
	// push anything above it.
	got := directory.FindCandidates("сочи", 5)

	require.NotEmpty(t, got)
	assert.Equal(t, "AER", got[0].Code)
}

func TestDirectory_FindCandidates_FuzzyBelowThreshold(t *testing.T) {
	directory := loadedDirectory(t)

	// Too far from any record to clear the similarity threshold.
	got := directory.FindCandidates("мс392ква17", 5)

	assert.Empty(t, got)
}

func TestDirectory_GetByCode(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.GetByCode("LED")
	require.NotNil(t, got)
	assert.Equal(t, "Пулково", got.Title)

	assert.Nil(t, directory.GetByCode("XXX"))
}

func TestDirectory_GetByCode_ReturnsCopy(t *testing.T) {
	directory := loadedDirectory(t)

	got := directory.GetByCode("LED")
	require.NotNil(t, got)
	got.Title = "mutated"

	fresh := directory.GetByCode("LED")
	assert.Equal(t, "Пулково", fresh.Title)
}
