package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
type EventStore struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Add stores a new event.
func (s *EventStore) Add(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// List returns all events ordered by date ascending.
func (s *EventStore) List(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByDate(s.events), nil
}

// ListBetween returns events with from <= date <= to, ordered by date
// ascending. Zero-value bounds are open on that side.
func (s *EventStore) ListBetween(_ context.Context, from, to time.Time) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Event
	for _, e := range s.events {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	return sortedByDate(result), nil
}

func sortedByDate(events []domain.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	copy(result, events)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
