package driven

import (
	"context"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// StationCatalog fetches the upstream station catalog.
//
// Implementations filter the raw feed down to air stations carrying a usable
// identifier; everything else is discarded during ingestion, not retried.
type StationCatalog interface {
	// FetchAirports downloads and flattens the full catalog.
	// Network or HTTP failures wrap domain.ErrRemoteFetchFailed.
	FetchAirports(ctx context.Context) ([]domain.Airport, error)
}

// ScheduleQuery describes a point-to-point schedule search.
type ScheduleQuery struct {
	// From and To are catalog station codes.
	From string
	To   string

	// Date is the departure day.
	Date time.Time

	// TransportType optionally restricts results ("plane" by default upstream).
	TransportType string
}

// FlightSegment is a single departure in a schedule search result.
type FlightSegment struct {
	Carrier       string
	Number        string
	Title         string
	TransportType string

	// Departure and Arrival are upstream-formatted local timestamps.
	Departure string
	Arrival   string

	// DurationSec is the flight duration in seconds.
	DurationSec int
}

// ScheduleService searches the timetable between two stations.
type ScheduleService interface {
	// SearchSchedule returns segments for the given query, in upstream order.
	// Failures wrap domain.ErrRemoteFetchFailed.
	SearchSchedule(ctx context.Context, q ScheduleQuery) ([]FlightSegment, error)
}
