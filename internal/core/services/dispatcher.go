package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.ToolDispatcher = (*Dispatcher)(nil)

// defaultMusicLimit bounds music search results when the call omits a limit.
const defaultMusicLimit = 10

// Dispatcher executes tool calls against the tool services. The switch over
// call types is exhaustive: adding a tool to the domain union without a case
// here surfaces as an "unsupported tool" result in tests.
type Dispatcher struct {
	flights  driving.FlightFinder
	calendar driving.CalendarService
	notes    driving.NotesService
	music    driven.MusicCatalog
}

// NewDispatcher creates a dispatcher. Any service may be nil; calls against
// a missing service fail with a "not configured" result.
func NewDispatcher(
	flights driving.FlightFinder,
	calendar driving.CalendarService,
	notes driving.NotesService,
	music driven.MusicCatalog,
) *Dispatcher {
	return &Dispatcher{flights: flights, calendar: calendar, notes: notes, music: music}
}

// Dispatch runs a single tool call and renders a user-facing result.
// Failures never panic; every outcome is a ToolResult.
func (d *Dispatcher) Dispatch(ctx context.Context, call domain.ToolCall) domain.ToolResult {
	logger.Section("Tool Dispatch")
	logger.Info("Executing tool: %s", call.Tool())

	switch c := call.(type) {
	case domain.FlightScheduleCall:
		return d.flightSchedule(ctx, c)
	case domain.AddCalendarEventCall:
		return d.addCalendarEvent(ctx, c)
	case domain.GetCalendarEventsCall:
		return d.getCalendarEvents(ctx, c)
	case domain.SearchMusicCall:
		return d.searchMusic(ctx, c)
	case domain.CreateNoteCall:
		return d.createNote(ctx, c)
	case domain.SearchNotesCall:
		return d.searchNotes(ctx, c)
	case domain.NoToolAvailableCall:
		return domain.ToolResult{Success: false, Message: c.UserMessage, ErrTag: "no_tool_available"}
	case domain.TaskCompletionCall:
		return domain.ToolResult{Success: c.Status == "success", Message: c.Result}
	default:
		return failure("unsupported_tool", fmt.Sprintf("unsupported tool: %s", call.Tool()))
	}
}

func (d *Dispatcher) flightSchedule(ctx context.Context, c domain.FlightScheduleCall) domain.ToolResult {
	if d.flights == nil {
		return failure("not_configured", "flight search is not configured")
	}

	report, err := d.flights.SearchFlights(ctx, c.FromCity, c.ToCity, c.Date)
	if err != nil {
		var notFound *driving.LocationNotFoundError
		switch {
		case errors.As(err, &notFound):
			return failure("location_not_found", formatSuggestions(notFound))
		case errors.Is(err, domain.ErrPeriodNotAllowed):
			return failure("period_not_allowed",
				"please give a specific departure day, not a range: "+c.Date)
		case errors.Is(err, domain.ErrUnrecognizedExpression), errors.Is(err, domain.ErrInvalidCalendarDate):
			return failure("date_parse_error", "could not understand the date: "+c.Date)
		default:
			return failure("schedule_error", "flight schedule lookup failed: "+err.Error())
		}
	}

	return domain.ToolResult{Success: true, Message: formatFlightReport(report)}
}

func (d *Dispatcher) addCalendarEvent(ctx context.Context, c domain.AddCalendarEventCall) domain.ToolResult {
	if d.calendar == nil {
		return failure("not_configured", "calendar is not configured")
	}

	event, err := d.calendar.AddEvent(ctx, c.Date, c.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPeriodNotAllowed):
			return failure("period_not_allowed",
				"please give a specific day, not a range: "+c.Date)
		case errors.Is(err, domain.ErrUnrecognizedExpression), errors.Is(err, domain.ErrInvalidCalendarDate):
			return failure("date_parse_error", "could not understand the date: "+c.Date)
		default:
			return failure("calendar_error", "adding the event failed: "+err.Error())
		}
	}

	return domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Event added on %s: %s", event.Date.Format(domain.DateLayout), event.Description),
	}
}

func (d *Dispatcher) getCalendarEvents(ctx context.Context, c domain.GetCalendarEventsCall) domain.ToolResult {
	if d.calendar == nil {
		return failure("not_configured", "calendar is not configured")
	}

	events, err := d.calendar.QueryEvents(ctx, c.Date, c.DateFrom, c.DateTo)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedExpression) || errors.Is(err, domain.ErrInvalidCalendarDate) {
			return failure("date_parse_error", "could not understand the date filter: "+err.Error())
		}
		return failure("calendar_error", "listing events failed: "+err.Error())
	}

	return domain.ToolResult{Success: true, Message: formatEvents(events, c.Date)}
}

func (d *Dispatcher) searchMusic(ctx context.Context, c domain.SearchMusicCall) domain.ToolResult {
	if d.music == nil {
		return failure("not_configured", "music search is not configured")
	}

	limit := c.Limit
	if limit <= 0 {
		limit = defaultMusicLimit
	}

	tracks, err := d.music.SearchTracks(ctx, c.Query, limit)
	if err != nil {
		return failure("music_error", "music search failed: "+err.Error())
	}
	if len(tracks) == 0 {
		return domain.ToolResult{Success: true, Message: "No tracks found for " + c.Query}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tracks for %q:\n", len(tracks), c.Query)
	for i, track := range tracks {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, strings.Join(track.Artists, ", "), track.Title)
	}
	return domain.ToolResult{Success: true, Message: strings.TrimRight(b.String(), "\n")}
}

func (d *Dispatcher) createNote(ctx context.Context, c domain.CreateNoteCall) domain.ToolResult {
	if d.notes == nil {
		return failure("not_configured", "notes are not configured")
	}

	note, err := d.notes.CreateNote(ctx, c.Title, c.Content)
	if err != nil {
		return failure("notes_error", "creating the note failed: "+err.Error())
	}
	return domain.ToolResult{Success: true, Message: "Note created: " + note.Title}
}

func (d *Dispatcher) searchNotes(ctx context.Context, c domain.SearchNotesCall) domain.ToolResult {
	if d.notes == nil {
		return failure("not_configured", "notes are not configured")
	}

	notes, err := d.notes.SearchNotes(ctx, c.Query)
	if err != nil {
		return failure("notes_error", "searching notes failed: "+err.Error())
	}
	if len(notes) == 0 {
		return domain.ToolResult{Success: true, Message: "No notes found for " + c.Query}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d notes:\n", len(notes))
	for _, note := range notes {
		fmt.Fprintf(&b, "• %s\n", note.Title)
	}
	return domain.ToolResult{Success: true, Message: strings.TrimRight(b.String(), "\n")}
}

func failure(tag, message string) domain.ToolResult {
	return domain.ToolResult{Success: false, ErrTag: tag, Message: message}
}

// formatSuggestions renders a "did you mean" message for a place-name miss.
func formatSuggestions(e *driving.LocationNotFoundError) string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no airport found for %q", e.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "no airport found for %q, did you mean:\n", e.Query)
	for _, a := range e.Suggestions {
		fmt.Fprintf(&b, "• %s (%s)\n", a.Title, a.Settlement)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatFlightReport renders a schedule search result.
func formatFlightReport(r *driving.FlightReport) string {
	if len(r.Segments) == 0 {
		return fmt.Sprintf("No flights from %s to %s on %s",
			r.From.Settlement, r.To.Settlement, r.Date.ISO())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d flights from %s to %s on %s:\n",
		len(r.Segments), r.From.Settlement, r.To.Settlement, r.Date.ISO())

	for i, f := range r.Segments {
		hours := f.DurationSec / 3600
		minutes := f.DurationSec % 3600 / 60
		duration := fmt.Sprintf("%dm", minutes)
		if hours > 0 {
			duration = fmt.Sprintf("%dh %dm", hours, minutes)
		}
		fmt.Fprintf(&b, "%d. %s %s: %s → %s (%s)\n",
			i+1, f.Carrier, f.Number, f.Departure, f.Arrival, duration)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatEvents renders a calendar query result.
func formatEvents(events []domain.Event, filter string) string {
	if len(events) == 0 {
		if filter != "" {
			return "No events for " + filter
		}
		return "No events in the calendar"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events:\n", len(events))
	for _, e := range events {
		fmt.Fprintf(&b, "• %s: %s\n", e.Date.Format(domain.DateLayout), e.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
