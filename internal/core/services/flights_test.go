package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
)

// mockScheduleService implements driven.ScheduleService for testing.
type mockScheduleService struct {
	segments  []driven.FlightSegment
	searchErr error

	lastQuery driven.ScheduleQuery
}

func (m *mockScheduleService) SearchSchedule(_ context.Context, query driven.ScheduleQuery) ([]driven.FlightSegment, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.segments, nil
}

func newTestFlights(schedule *mockScheduleService) *Flights {
	directory := NewDirectory(&mockCatalog{airports: testAirports()}, nil)
	return NewFlights(directory, NewResolver(fixedClock), schedule)
}

func TestFlights_SearchFlights(t *testing.T) {
	schedule := &mockScheduleService{segments: []driven.FlightSegment{
		{Carrier: "Аэрофлот", Number: "SU 6", Departure: "09:25", Arrival: "10:45", DurationSec: 4800},
		{Carrier: "Россия", Number: "FV 6015", Departure: "14:10", Arrival: "15:30", DurationSec: 4800},
	}}
	flights := newTestFlights(schedule)

	report, err := flights.SearchFlights(context.Background(), "Москва", "Санкт-Петербург", "завтра")

	require.NoError(t, err)
	assert.Equal(t, "SVO", report.From.Code)
	assert.Equal(t, "LED", report.To.Code)
	assert.Equal(t, "2026-02-03", report.Date.ISO())
	require.Len(t, report.Segments, 2)
	assert.Equal(t, "SU 6", report.Segments[0].Number)

	// The schedule is queried by catalog codes, not display names.
	assert.Equal(t, "SVO", schedule.lastQuery.From)
	assert.Equal(t, "LED", schedule.lastQuery.To)
	assert.Equal(t, "2026-02-03", schedule.lastQuery.Date.Format(domain.DateLayout))
}

func TestFlights_SearchFlights_FuzzyPlaceNames(t *testing.T) {
	schedule := &mockScheduleService{}
	flights := newTestFlights(schedule)

	report, err := flights.SearchFlights(context.Background(), "масква", "сочи", "15.02.2026")

	require.NoError(t, err)
	assert.Equal(t, "Москва", report.From.Settlement)
	assert.Equal(t, "AER", report.To.Code)
}

func TestFlights_SearchFlights_UnknownOrigin(t *testing.T) {
	flights := newTestFlights(&mockScheduleService{})

	_, err := flights.SearchFlights(context.Background(), "атлантида", "сочи", "завтра")

	require.Error(t, err)
	var notFound *driving.LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "атлантида", notFound.Query)
}

func TestFlights_SearchFlights_SuggestionsOnNearMiss(t *testing.T) {
	flights := newTestFlights(&mockScheduleService{})

	// "сочии" misses the exact stages but survives the fuzzy threshold, so it
	// resolves instead of failing. A query with no fuzzy survivors yields an
	// empty suggestion list.
	_, err := flights.SearchFlights(context.Background(), "кзхww12", "сочи", "завтра")

	var notFound *driving.LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, notFound.Suggestions)
}

func TestFlights_SearchFlights_RejectsPeriod(t *testing.T) {
	flights := newTestFlights(&mockScheduleService{})

	_, err := flights.SearchFlights(context.Background(), "москва", "сочи", "next week")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPeriodNotAllowed)
}

func TestFlights_SearchFlights_BadDate(t *testing.T) {
	flights := newTestFlights(&mockScheduleService{})

	_, err := flights.SearchFlights(context.Background(), "москва", "сочи", "30 февраля")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCalendarDate)
}

func TestFlights_SearchFlights_ScheduleError(t *testing.T) {
	schedule := &mockScheduleService{searchErr: errors.New("rate limited")}
	flights := newTestFlights(schedule)

	_, err := flights.SearchFlights(context.Background(), "москва", "сочи", "завтра")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search schedule")
}

func TestFlights_SearchFlights_EmptySchedule(t *testing.T) {
	flights := newTestFlights(&mockScheduleService{})

	report, err := flights.SearchFlights(context.Background(), "москва", "сочи", "завтра")

	require.NoError(t, err)
	assert.Empty(t, report.Segments)
}

func TestFlights_SearchFlights_LoadFailure(t *testing.T) {
	directory := NewDirectory(&mockCatalog{fetchErr: errors.New("api down")}, nil)
	flights := NewFlights(directory, NewResolver(fixedClock), &mockScheduleService{})

	_, err := flights.SearchFlights(context.Background(), "москва", "сочи", "завтра")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load airport catalog")
}
