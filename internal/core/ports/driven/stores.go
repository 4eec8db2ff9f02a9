package driven

import (
	"context"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// EventStore persists calendar events.
type EventStore interface {
	// Add stores a new event.
	Add(ctx context.Context, event domain.Event) error

	// List returns all events ordered by date ascending.
	List(ctx context.Context) ([]domain.Event, error)

	// ListBetween returns events with from <= date <= to, ordered by date
	// ascending. Zero-value bounds are open on that side.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

// NoteStore persists user notes.
type NoteStore interface {
	// Save stores a new note.
	Save(ctx context.Context, note domain.Note) error

	// List returns all notes ordered by creation time descending.
	List(ctx context.Context) ([]domain.Note, error)

	// Search returns notes whose title or content contains the query,
	// case-insensitively, ordered by creation time descending.
	Search(ctx context.Context, query string) ([]domain.Note, error)
}

// MusicCatalog searches an external music service.
type MusicCatalog interface {
	// SearchTracks returns up to limit tracks matching the query.
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error)
}
