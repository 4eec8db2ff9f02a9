package driving

import (
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// DateResolver turns a free-text date expression into a calendar day or a
// closed date interval. Resolution is pure: no I/O, always completes
// synchronously.
//
// Failures are typed: domain.ErrUnrecognizedExpression when no grammar
// matches, domain.ErrInvalidCalendarDate when a grammar matches but the
// arithmetic result is not a real date. Neither is ever coerced into a
// best-guess value.
type DateResolver interface {
	// Resolve evaluates the expression against the resolver's clock.
	Resolve(expression string) (domain.ParseOutcome, error)

	// ResolveAt evaluates the expression against an explicit reference
	// instant. Only the calendar day the instant falls on matters.
	ResolveAt(expression string, ref time.Time) (domain.ParseOutcome, error)
}
