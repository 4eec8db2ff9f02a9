package driving

import (
	"context"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// CalendarService manages calendar events keyed by resolved dates.
type CalendarService interface {
	// AddEvent resolves dateExpr and stores an event on that day.
	// Period expressions fail with domain.ErrPeriodNotAllowed.
	AddEvent(ctx context.Context, dateExpr, description string) (domain.Event, error)

	// QueryEvents resolves the supplied expressions into a filter and returns
	// matching events sorted by date. All arguments may be empty.
	QueryEvents(ctx context.Context, dateExpr, fromExpr, toExpr string) ([]domain.Event, error)
}

// NotesService creates and searches notes.
type NotesService interface {
	CreateNote(ctx context.Context, title, content string) (domain.Note, error)
	SearchNotes(ctx context.Context, query string) ([]domain.Note, error)
}

// FlightReport is the result of a flight schedule search.
type FlightReport struct {
	From domain.Airport
	To   domain.Airport

	// Date is the resolved departure day.
	Date domain.ResolvedDate

	Segments []FlightInfo
}

// FlightInfo is one flight in a report.
type FlightInfo struct {
	Carrier       string
	Number        string
	Title         string
	TransportType string
	Departure     string
	Arrival       string
	DurationSec   int
}

// FlightFinder searches the flight schedule between two free-text places.
type FlightFinder interface {
	// SearchFlights resolves both place names and the date expression, then
	// queries the schedule. Unresolvable places fail with a
	// *LocationNotFoundError carrying "did you mean" suggestions.
	SearchFlights(ctx context.Context, fromQuery, toQuery, dateExpr string) (*FlightReport, error)
}

// LocationNotFoundError reports a place name that matched no airport exactly,
// with near-miss suggestions for the user.
type LocationNotFoundError struct {
	Query       string
	Suggestions []domain.Airport
}

func (e *LocationNotFoundError) Error() string {
	return "location not found: " + e.Query
}

// ToolDispatcher executes a tool call against the tool services.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, call domain.ToolCall) domain.ToolResult
}

// Assistant turns a free-form natural-language request into a tool call and
// dispatches it.
type Assistant interface {
	Ask(ctx context.Context, request string) (domain.ToolResult, error)
}
