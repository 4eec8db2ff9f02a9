package services

import (
	"context"
	"fmt"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure Flights implements the interface.
var _ driving.FlightFinder = (*Flights)(nil)

// suggestionLimit caps "did you mean" candidates on a place-name miss.
const suggestionLimit = 3

// Flights searches the flight schedule between two free-text places.
type Flights struct {
	directory driving.AirportDirectory
	resolver  driving.DateResolver
	schedule  driven.ScheduleService
}

// NewFlights creates a flight finder.
func NewFlights(directory driving.AirportDirectory, resolver driving.DateResolver, schedule driven.ScheduleService) *Flights {
	return &Flights{directory: directory, resolver: resolver, schedule: schedule}
}

// SearchFlights resolves both place names and the date expression, then
// queries the schedule for that day.
func (f *Flights) SearchFlights(ctx context.Context, fromQuery, toQuery, dateExpr string) (*driving.FlightReport, error) {
	if err := f.directory.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	from, err := f.resolvePlace(fromQuery)
	if err != nil {
		return nil, err
	}
	to, err := f.resolvePlace(toQuery)
	if err != nil {
		return nil, err
	}

	outcome, err := f.resolver.Resolve(dateExpr)
	if err != nil {
		return nil, err
	}
	if outcome.IsPeriod() {
		period, _ := outcome.Period()
		return nil, fmt.Errorf("%q resolves to %s: %w", dateExpr, period, domain.ErrPeriodNotAllowed)
	}
	date, _ := outcome.Date()

	logger.Info("Searching flights %s (%s) -> %s (%s) on %s",
		from.Settlement, from.Code, to.Settlement, to.Code, date.ISO())

	segments, err := f.schedule.SearchSchedule(ctx, driven.ScheduleQuery{
		From: from.Code,
		To:   to.Code,
		Date: date.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("search schedule: %w", err)
	}

	report := &driving.FlightReport{From: *from, To: *to, Date: date}
	for _, seg := range segments {
		report.Segments = append(report.Segments, driving.FlightInfo{
			Carrier:       seg.Carrier,
			Number:        seg.Number,
			Title:         seg.Title,
			TransportType: seg.TransportType,
			Departure:     seg.Departure,
			Arrival:       seg.Arrival,
			DurationSec:   seg.DurationSec,
		})
	}
	return report, nil
}

// resolvePlace finds the best airport for a free-text place name; a miss
// carries near-miss suggestions for the user.
func (f *Flights) resolvePlace(query string) (*domain.Airport, error) {
	if best := f.directory.FindBest(query); best != nil {
		return best, nil
	}
	return nil, &driving.LocationNotFoundError{
		Query:       query,
		Suggestions: f.directory.FindCandidates(query, suggestionLimit),
	}
}
