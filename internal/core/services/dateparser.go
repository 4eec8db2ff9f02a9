package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.DateResolver = (*Resolver)(nil)

// grammar is one recognizer in the resolver's cascade. Grammars are tried in
// a fixed priority order; the first match wins. More specific grammars (exact
// literals) must come before broader ones that could spuriously match a
// superstring.
type grammar interface {
	// Name identifies the grammar in logs.
	Name() string

	// Match attempts to recognize expr (already lower-cased and trimmed)
	// against the reference day. matched reports whether the grammar applies
	// at all; a non-nil err with matched=true means the expression was
	// recognized syntactically but names an impossible calendar date.
	Match(expr string, ref time.Time) (outcome domain.ParseOutcome, matched bool, err error)
}

// Resolver resolves natural-language date expressions (Russian and English)
// into calendar days or closed date intervals. It is pure and stateless
// beyond its clock, and safe for concurrent use.
type Resolver struct {
	clock    func() time.Time
	grammars []grammar
}

// NewResolver creates a resolver evaluating expressions against the given
// clock. A nil clock defaults to time.Now.
func NewResolver(clock func() time.Time) *Resolver {
	if clock == nil {
		clock = time.Now
	}
	return &Resolver{
		clock: clock,
		grammars: []grammar{
			simpleRelativeGrammar{},
			weekdayGrammar{},
			weekPeriodGrammar{},
			monthPeriodGrammar{},
			offsetGrammar{},
			absoluteGrammar{},
		},
	}
}

// Resolve evaluates the expression against the resolver's clock.
func (r *Resolver) Resolve(expression string) (domain.ParseOutcome, error) {
	return r.ResolveAt(expression, r.clock())
}

// ResolveAt evaluates the expression against an explicit reference instant.
// The instant's time-of-day only determines which calendar day it falls on.
func (r *Resolver) ResolveAt(expression string, ref time.Time) (domain.ParseOutcome, error) {
	original := expression
	expr := strings.ToLower(strings.TrimSpace(expression))
	refDay := domain.CivilDay(ref)

	logger.Debug("Resolving date expression %q against %s", expr, refDay.Format(domain.DateLayout))

	for _, g := range r.grammars {
		outcome, matched, err := g.Match(expr, refDay)
		if !matched {
			continue
		}
		if err != nil {
			logger.Debug("Grammar %s rejected %q: %v", g.Name(), expr, err)
			return domain.ParseOutcome{}, fmt.Errorf("%q: %w", original, err)
		}

		outcome = outcome.WithOriginalText(original)
		logger.Debug("Grammar %s resolved %q to %s", g.Name(), expr, outcome)
		return outcome, nil
	}

	logger.Debug("No grammar matched %q", expr)
	return domain.ParseOutcome{}, fmt.Errorf("%q: %w", original, domain.ErrUnrecognizedExpression)
}
