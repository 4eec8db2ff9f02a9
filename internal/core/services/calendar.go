package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure Calendar implements the interface.
var _ driving.CalendarService = (*Calendar)(nil)

// Calendar stores events on resolver-canonicalized dates.
type Calendar struct {
	resolver driving.DateResolver
	events   driven.EventStore
	clock    func() time.Time
}

// NewCalendar creates a calendar service. A nil clock defaults to time.Now.
func NewCalendar(resolver driving.DateResolver, events driven.EventStore, clock func() time.Time) *Calendar {
	if clock == nil {
		clock = time.Now
	}
	return &Calendar{resolver: resolver, events: events, clock: clock}
}

// AddEvent resolves dateExpr and stores an event on that day. Period
// expressions are a distinct, user-facing error: adding needs a specific day.
func (c *Calendar) AddEvent(ctx context.Context, dateExpr, description string) (domain.Event, error) {
	outcome, err := c.resolver.Resolve(dateExpr)
	if err != nil {
		return domain.Event{}, err
	}

	if outcome.IsPeriod() {
		period, _ := outcome.Period()
		return domain.Event{}, fmt.Errorf("%q resolves to %s: %w",
			dateExpr, period, domain.ErrPeriodNotAllowed)
	}

	resolved, _ := outcome.Date()
	event := domain.Event{
		ID:          uuid.NewString(),
		Date:        resolved.Date,
		Description: description,
		CreatedAt:   c.clock(),
	}

	if err := c.events.Add(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("add event: %w", err)
	}

	logger.Info("Added calendar event on %s: %s", resolved.ISO(), description)
	return event, nil
}

// QueryEvents resolves the supplied expressions into a filter and returns
// matching events sorted by date. A period in dateExpr widens the filter to
// its bounds; fromExpr/toExpr periods contribute their start/end day.
func (c *Calendar) QueryEvents(ctx context.Context, dateExpr, fromExpr, toExpr string) ([]domain.Event, error) {
	query, err := c.buildQuery(dateExpr, fromExpr, toExpr)
	if err != nil {
		return nil, err
	}

	switch {
	case query.Day != nil:
		return c.events.ListBetween(ctx, *query.Day, *query.Day)
	case query.From != nil || query.To != nil:
		var from, to time.Time
		if query.From != nil {
			from = *query.From
		}
		if query.To != nil {
			to = *query.To
		}
		return c.events.ListBetween(ctx, from, to)
	default:
		return c.events.List(ctx)
	}
}

// buildQuery turns up to three date expressions into an EventQuery.
func (c *Calendar) buildQuery(dateExpr, fromExpr, toExpr string) (domain.EventQuery, error) {
	var query domain.EventQuery

	if dateExpr != "" {
		outcome, err := c.resolver.Resolve(dateExpr)
		if err != nil {
			return query, err
		}
		if period, ok := outcome.Period(); ok {
			query.From = &period.From
			query.To = &period.To
		} else {
			resolved, _ := outcome.Date()
			query.Day = &resolved.Date
		}
	}

	if fromExpr != "" {
		outcome, err := c.resolver.Resolve(fromExpr)
		if err != nil {
			return query, fmt.Errorf("query start: %w", err)
		}
		if period, ok := outcome.Period(); ok {
			query.From = &period.From
		} else {
			resolved, _ := outcome.Date()
			query.From = &resolved.Date
		}
	}

	if toExpr != "" {
		outcome, err := c.resolver.Resolve(toExpr)
		if err != nil {
			return query, fmt.Errorf("query end: %w", err)
		}
		if period, ok := outcome.Period(); ok {
			query.To = &period.To
		} else {
			resolved, _ := outcome.Date()
			query.To = &resolved.Date
		}
	}

	return query, nil
}
