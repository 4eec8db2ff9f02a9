// Package file implements file-backed persistence adapters.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

const (
	// snapshotVersion is the on-disk format version. Anything else is
	// treated as invalid and refetched.
	snapshotVersion = "1.0"

	// DefaultTTL is how long a snapshot stays usable. The boundary is
	// inclusive: a snapshot exactly this old is still served.
	DefaultTTL = 30 * 24 * time.Hour
)

// snapshotFile is the on-disk JSON layout.
type snapshotFile struct {
	Version   string           `json:"version"`
	UpdatedAt string           `json:"updated_at"`
	Airports  []domain.Airport `json:"airports"`
}

// SnapshotStore persists airport snapshots as a single JSON file.
type SnapshotStore struct {
	path  string
	ttl   time.Duration
	clock func() time.Time
}

// NewSnapshotStore creates a store writing to path. A non-positive ttl
// falls back to DefaultTTL; a nil clock defaults to time.Now.
func NewSnapshotStore(path string, ttl time.Duration, clock func() time.Time) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &SnapshotStore{path: path, ttl: ttl, clock: clock}
}

// Load reads and validates the stored snapshot.
func (s *SnapshotStore) Load(_ context.Context) (*driven.AirportSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotInvalid, err)
	}
	if file.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: version %q", domain.ErrSnapshotInvalid, file.Version)
	}

	capturedAt, err := time.Parse(time.RFC3339, file.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: updated_at %q", domain.ErrSnapshotInvalid, file.UpdatedAt)
	}

	if age := s.clock().Sub(capturedAt); age > s.ttl {
		return nil, fmt.Errorf("%w: captured %s ago", domain.ErrSnapshotStale, age.Round(time.Hour))
	}

	return &driven.AirportSnapshot{
		CapturedAt: capturedAt,
		Airports:   file.Airports,
	}, nil
}

// Save writes the snapshot atomically: a temp file in the target directory
// is renamed over the old snapshot, so readers never observe a partial write.
func (s *SnapshotStore) Save(_ context.Context, snap driven.AirportSnapshot) error {
	capturedAt := snap.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = s.clock()
	}

	data, err := json.MarshalIndent(snapshotFile{
		Version:   snapshotVersion,
		UpdatedAt: capturedAt.UTC().Format(time.RFC3339),
		Airports:  snap.Airports,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "airports-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	logger.Debug("Saved %d airports to %s", len(snap.Airports), s.path)
	return nil
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}
