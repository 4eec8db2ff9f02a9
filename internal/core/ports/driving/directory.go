package driving

import (
	"context"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// AirportDirectory resolves free-text place names to airport records.
//
// EnsureLoaded must succeed before lookups return results; lookups on an
// unloaded directory return empty results rather than failing. Once loaded,
// all lookups are pure reads over immutable indexes.
type AirportDirectory interface {
	// EnsureLoaded hydrates the directory from the local snapshot or, failing
	// that, the remote catalog. Idempotent; concurrent callers share a single
	// in-flight load.
	EnsureLoaded(ctx context.Context) error

	// Reload forces a remote refresh and rewrites the snapshot.
	Reload(ctx context.Context) error

	// FindBest returns the single most relevant record, or nil when nothing
	// matches. Misses are an empty result, not an error, so callers can offer
	// suggestions instead of failing outright.
	FindBest(query string) *domain.Airport

	// FindCandidates returns up to limit records ordered by relevance.
	FindCandidates(query string, limit int) []domain.Airport

	// GetByCode returns the record with the given catalog code, or nil.
	GetByCode(code string) *domain.Airport

	// Len returns the number of loaded records.
	Len() int
}
