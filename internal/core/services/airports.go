package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure Directory implements the interface.
var _ driving.AirportDirectory = (*Directory)(nil)

// fuzzyThreshold is the minimum similarity score a record must reach to be
// returned from the fuzzy fallback stage.
const fuzzyThreshold = 0.6

// DefaultCandidateLimit bounds FindCandidates when the caller passes a
// non-positive limit.
const DefaultCandidateLimit = 5

// Directory is the in-memory airport registry. It hydrates once from the
// snapshot store or the remote catalog, then serves read-only lookups over
// immutable indexes.
type Directory struct {
	catalog   driven.StationCatalog
	snapshots driven.SnapshotStore

	loadGroup singleflight.Group

	mu           sync.RWMutex
	loaded       bool
	airports     []domain.Airport
	byCode       map[string]int
	bySettlement map[string][]int
	byTitle      map[string]int
}

// NewDirectory creates an empty directory. The snapshot store may be nil, in
// which case every load goes to the remote catalog.
func NewDirectory(catalog driven.StationCatalog, snapshots driven.SnapshotStore) *Directory {
	return &Directory{catalog: catalog, snapshots: snapshots}
}

// EnsureLoaded hydrates the directory if it is not loaded yet. Concurrent
// callers are collapsed into a single in-flight load; a failed load leaves
// the directory empty and is reported to every waiter.
func (d *Directory) EnsureLoaded(ctx context.Context) error {
	d.mu.RLock()
	loaded := d.loaded
	d.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := d.loadGroup.Do("load", func() (any, error) {
		// Re-check: another caller may have completed the load between the
		// fast path and entering the group.
		d.mu.RLock()
		loaded := d.loaded
		d.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		if d.loadFromSnapshot(ctx) {
			return nil, nil
		}
		return nil, d.loadFromCatalog(ctx)
	})
	return err
}

// Reload forces a remote refresh regardless of current state.
func (d *Directory) Reload(ctx context.Context) error {
	_, err, _ := d.loadGroup.Do("reload", func() (any, error) {
		return nil, d.loadFromCatalog(ctx)
	})
	return err
}

// loadFromSnapshot attempts to hydrate from the local snapshot. Any load
// failure (absent, unrecognized version, stale) is a cache miss.
func (d *Directory) loadFromSnapshot(ctx context.Context) bool {
	if d.snapshots == nil {
		return false
	}

	snap, err := d.snapshots.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("Airport snapshot not found")
		case errors.Is(err, domain.ErrSnapshotStale):
			logger.Info("Airport snapshot is stale, refetching catalog")
		default:
			logger.Warn("Airport snapshot unusable: %v", err)
		}
		return false
	}

	d.install(snap.Airports)
	logger.Info("Loaded %d airports from snapshot (captured %s)",
		len(snap.Airports), snap.CapturedAt.Format("2006-01-02"))
	return true
}

// loadFromCatalog fetches the remote catalog and persists a fresh snapshot.
func (d *Directory) loadFromCatalog(ctx context.Context) error {
	airports, err := d.catalog.FetchAirports(ctx)
	if err != nil {
		return fmt.Errorf("load airport catalog: %w", err)
	}

	d.install(airports)
	logger.Info("Loaded %d airports from remote catalog", len(airports))

	if d.snapshots != nil {
		if err := d.snapshots.Save(ctx, driven.AirportSnapshot{Airports: airports}); err != nil {
			// The directory is usable without the snapshot; don't fail the load.
			logger.Warn("Saving airport snapshot failed: %v", err)
		}
	}
	return nil
}

// install atomically replaces the record set and rebuilds every index.
func (d *Directory) install(airports []domain.Airport) {
	byCode := make(map[string]int, len(airports))
	bySettlement := make(map[string][]int)
	byTitle := make(map[string]int, len(airports))

	for i, a := range airports {
		byCode[a.Code] = i

		settlement := strings.ToLower(a.Settlement)
		bySettlement[settlement] = append(bySettlement[settlement], i)

		title := strings.ToLower(a.Title)
		if _, exists := byTitle[title]; !exists {
			byTitle[title] = i
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.airports = airports
	d.byCode = byCode
	d.bySettlement = bySettlement
	d.byTitle = byTitle
	d.loaded = true
}

// FindBest returns the most relevant record for the query, or nil.
func (d *Directory) FindBest(query string) *domain.Airport {
	candidates := d.FindCandidates(query, 1)
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// FindCandidates returns up to limit records ordered by relevance. Matching
// is staged: settlement index, then title index, then exact alias match, and
// only when all of those produce nothing, fuzzy scoring. Exact matches are
// never outranked by an accidental high fuzzy score on a different record.
func (d *Directory) FindCandidates(query string, limit int) []domain.Airport {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		logger.Warn("Airport directory not loaded, returning no candidates")
		return nil
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	// Stage 1: settlement name. A settlement may host several stations;
	// return them all in catalog order.
	if indexes, ok := d.bySettlement[q]; ok {
		return d.collect(indexes, limit)
	}

	// Stage 2: station title.
	if i, ok := d.byTitle[q]; ok {
		return d.collect([]int{i}, 1)
	}

	// Stage 3: exact alias match, all at maximum relevance, catalog order.
	var aliasHits []int
	for i := range d.airports {
		if d.airports[i].Matches(q) {
			aliasHits = append(aliasHits, i)
		}
	}
	if len(aliasHits) > 0 {
		return d.collect(aliasHits, limit)
	}

	// Stage 4: fuzzy fallback over every record.
	type scored struct {
		index int
		score float64
	}
	var survivors []scored
	for i := range d.airports {
		if score := d.airports[i].SimilarityScore(q); score >= fuzzyThreshold {
			survivors = append(survivors, scored{index: i, score: score})
		}
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].score > survivors[j].score
	})

	if len(survivors) > limit {
		survivors = survivors[:limit]
	}
	result := make([]domain.Airport, len(survivors))
	for i, s := range survivors {
		result[i] = d.airports[s.index]
	}
	return result
}

// GetByCode returns the record with the given catalog code, or nil.
func (d *Directory) GetByCode(code string) *domain.Airport {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.byCode[code]
	if !ok {
		return nil
	}
	a := d.airports[i]
	return &a
}

// Len returns the number of loaded records.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.airports)
}

// collect copies records at the given indexes, truncated to limit.
func (d *Directory) collect(indexes []int, limit int) []domain.Airport {
	if len(indexes) > limit {
		indexes = indexes[:limit]
	}
	result := make([]domain.Airport, len(indexes))
	for i, idx := range indexes {
		result[i] = d.airports[idx]
	}
	return result
}
