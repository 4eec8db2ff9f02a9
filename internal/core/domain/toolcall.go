package domain

import (
	"encoding/json"
	"fmt"
)

// ToolName identifies one of the assistant's tools.
type ToolName string

// The closed set of tools the assistant can invoke.
const (
	ToolFlightSchedule    ToolName = "flight_schedule"
	ToolAddCalendarEvent  ToolName = "add_calendar_event"
	ToolGetCalendarEvents ToolName = "get_calendar_events"
	ToolSearchMusic       ToolName = "search_music"
	ToolCreateNote        ToolName = "create_note"
	ToolSearchNotes       ToolName = "search_notes"
	ToolNoToolAvailable   ToolName = "no_tool_available"
	ToolTaskCompletion    ToolName = "task_completion"
)

// ToolCall is a single tool invocation. The set of implementations is closed;
// dispatchers switch exhaustively over the concrete types.
type ToolCall interface {
	Tool() ToolName
}

// FlightScheduleCall searches the flight schedule between two places.
type FlightScheduleCall struct {
	// FromCity is the departure city or airport name as the user said it.
	FromCity string `json:"from_city"`

	// ToCity is the arrival city or airport name.
	ToCity string `json:"to_city"`

	// Date is a free-text date expression ("завтра", "2026-02-15", ...).
	Date string `json:"date"`
}

// Tool implements ToolCall.
func (FlightScheduleCall) Tool() ToolName { return ToolFlightSchedule }

// AddCalendarEventCall adds an event on a specific day.
type AddCalendarEventCall struct {
	// Date is a free-text date expression. Periods are rejected.
	Date string `json:"date"`

	Description string `json:"description"`
}

// Tool implements ToolCall.
func (AddCalendarEventCall) Tool() ToolName { return ToolAddCalendarEvent }

// GetCalendarEventsCall lists events, optionally filtered by a date or period.
// All three fields accept free-text date expressions; empty fields mean no
// filter on that bound.
type GetCalendarEventsCall struct {
	Date     string `json:"date,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

// Tool implements ToolCall.
func (GetCalendarEventsCall) Tool() ToolName { return ToolGetCalendarEvents }

// SearchMusicCall searches the music catalog.
type SearchMusicCall struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Tool implements ToolCall.
func (SearchMusicCall) Tool() ToolName { return ToolSearchMusic }

// CreateNoteCall stores a note.
type CreateNoteCall struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Tool implements ToolCall.
func (CreateNoteCall) Tool() ToolName { return ToolCreateNote }

// SearchNotesCall searches notes by title or content.
type SearchNotesCall struct {
	Query string `json:"query"`
}

// Tool implements ToolCall.
func (SearchNotesCall) Tool() ToolName { return ToolSearchNotes }

// NoToolAvailableCall signals that no tool fits the request.
type NoToolAvailableCall struct {
	Reason      string `json:"reason"`
	UserMessage string `json:"user_message"`
}

// Tool implements ToolCall.
func (NoToolAvailableCall) Tool() ToolName { return ToolNoToolAvailable }

// TaskCompletionCall signals that the task is finished.
type TaskCompletionCall struct {
	Result string `json:"result"`

	// Status is "success" or "failed".
	Status string `json:"status"`
}

// Tool implements ToolCall.
func (TaskCompletionCall) Tool() ToolName { return ToolTaskCompletion }

// ToolResult is the outcome of dispatching a tool call.
type ToolResult struct {
	// Success reports whether the tool ran to completion.
	Success bool `json:"success"`

	// Message is the user-facing result or error description.
	Message string `json:"message"`

	// ErrTag is a short machine-readable error identifier, empty on success.
	ErrTag string `json:"error,omitempty"`
}

// toolEnvelope peeks at the discriminator field.
type toolEnvelope struct {
	Tool ToolName `json:"tool"`
}

// DecodeToolCall parses a JSON tool call using the "tool" discriminator.
// Unknown discriminators return ErrUnsupportedTool.
func DecodeToolCall(data []byte) (ToolCall, error) {
	var env toolEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode tool call: %w", err)
	}

	switch env.Tool {
	case ToolFlightSchedule:
		return decodeAs[FlightScheduleCall](data, env.Tool)
	case ToolAddCalendarEvent:
		return decodeAs[AddCalendarEventCall](data, env.Tool)
	case ToolGetCalendarEvents:
		return decodeAs[GetCalendarEventsCall](data, env.Tool)
	case ToolSearchMusic:
		return decodeAs[SearchMusicCall](data, env.Tool)
	case ToolCreateNote:
		return decodeAs[CreateNoteCall](data, env.Tool)
	case ToolSearchNotes:
		return decodeAs[SearchNotesCall](data, env.Tool)
	case ToolNoToolAvailable:
		return decodeAs[NoToolAvailableCall](data, env.Tool)
	case ToolTaskCompletion:
		return decodeAs[TaskCompletionCall](data, env.Tool)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTool, env.Tool)
	}
}

// decodeAs unmarshals the payload into a concrete call type, returning it as
// a value so dispatchers can type-switch without pointer cases.
func decodeAs[T ToolCall](data []byte, name ToolName) (ToolCall, error) {
	var call T
	if err := json.Unmarshal(data, &call); err != nil {
		return nil, fmt.Errorf("decode %s call: %w", name, err)
	}
	return call, nil
}

// EncodeToolCall serializes a tool call with its discriminator included.
func EncodeToolCall(call ToolCall) ([]byte, error) {
	body, err := json.Marshal(call)
	if err != nil {
		return nil, fmt.Errorf("encode tool call: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode tool call: %w", err)
	}
	fields["tool"] = call.Tool()

	return json.Marshal(fields)
}
