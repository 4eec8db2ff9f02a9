package driven

import (
	"context"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// AirportSnapshot is a point-in-time copy of the full airport set.
type AirportSnapshot struct {
	// CapturedAt is when the snapshot was written.
	CapturedAt time.Time

	Airports []domain.Airport
}

// SnapshotStore persists airport snapshots between process runs.
//
// Load distinguishes three failure modes, all treated as a cache miss by the
// directory: domain.ErrNotFound (no snapshot), domain.ErrSnapshotInvalid
// (unrecognized version or unparsable contents) and domain.ErrSnapshotStale
// (older than the staleness threshold).
type SnapshotStore interface {
	Load(ctx context.Context) (*AirportSnapshot, error)

	// Save replaces the stored snapshot wholesale. A crash mid-write must not
	// leave a snapshot that validates but contains truncated data.
	Save(ctx context.Context, snap AirportSnapshot) error
}
