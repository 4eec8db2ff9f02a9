package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
)

// Ensure Notes implements the interface.
var _ driving.NotesService = (*Notes)(nil)

// Notes creates and searches user notes.
type Notes struct {
	store driven.NoteStore
	clock func() time.Time
}

// NewNotes creates a notes service. A nil clock defaults to time.Now.
func NewNotes(store driven.NoteStore, clock func() time.Time) *Notes {
	if clock == nil {
		clock = time.Now
	}
	return &Notes{store: store, clock: clock}
}

// CreateNote stores a new note. The title must be non-empty.
func (n *Notes) CreateNote(ctx context.Context, title, content string) (domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Note{}, fmt.Errorf("note title: %w", domain.ErrInvalidInput)
	}

	note := domain.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: n.clock(),
	}
	if err := n.store.Save(ctx, note); err != nil {
		return domain.Note{}, fmt.Errorf("save note: %w", err)
	}
	return note, nil
}

// SearchNotes returns notes matching the query; an empty query lists all.
func (n *Notes) SearchNotes(ctx context.Context, query string) ([]domain.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return n.store.List(ctx)
	}
	return n.store.Search(ctx, query)
}
