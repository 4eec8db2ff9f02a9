package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore.
type NoteStore struct {
	mu    sync.RWMutex
	notes []domain.Note
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// Save stores a new note.
func (s *NoteStore) Save(_ context.Context, note domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, note)
	return nil
}

// List returns all notes ordered by creation time descending.
func (s *NoteStore) List(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByCreation(s.notes), nil
}

// Search returns notes whose title or content contains the query,
// case-insensitively, ordered by creation time descending.
func (s *NoteStore) Search(_ context.Context, query string) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var result []domain.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			result = append(result, n)
		}
	}
	return sortedByCreation(result), nil
}

func sortedByCreation(notes []domain.Note) []domain.Note {
	result := make([]domain.Note, len(notes))
	copy(result, notes)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
