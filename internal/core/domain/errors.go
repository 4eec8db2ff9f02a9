package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Date resolution errors.

	// ErrUnrecognizedExpression indicates no date grammar matched the input.
	// Not retryable; the caller should ask the user to rephrase.
	ErrUnrecognizedExpression = errors.New("unrecognized date expression")

	// ErrInvalidCalendarDate indicates a grammar matched but the resulting
	// calendar date does not exist (e.g. February 30th). Not retryable.
	ErrInvalidCalendarDate = errors.New("invalid calendar date")

	// ErrPeriodNotAllowed indicates a period expression was supplied where a
	// single calendar day is required.
	ErrPeriodNotAllowed = errors.New("period not allowed, a specific day is required")

	// Airport directory errors.

	// ErrRemoteFetchFailed indicates the station catalog could not be fetched.
	// The caller may retry the whole load later.
	ErrRemoteFetchFailed = errors.New("remote catalog fetch failed")

	// ErrSnapshotInvalid indicates a cached snapshot failed validation.
	// Internal: treated as a cache miss, never surfaced to callers.
	ErrSnapshotInvalid = errors.New("snapshot invalid")

	// ErrSnapshotStale indicates a cached snapshot is older than the
	// staleness threshold. Internal: treated as a cache miss.
	ErrSnapshotStale = errors.New("snapshot stale")

	// Tool layer errors.

	// ErrUnsupportedTool indicates a tool call with an unknown discriminator.
	ErrUnsupportedTool = errors.New("unsupported tool")

	// ErrLLMUnavailable indicates no LLM provider is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNotConfigured indicates a tool's upstream service is not configured
	// (missing API key or endpoint).
	ErrNotConfigured = errors.New("service not configured")
)
