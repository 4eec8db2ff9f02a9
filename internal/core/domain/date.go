package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical textual form of a calendar day.
const DateLayout = "2006-01-02"

// ResolvedDate is the outcome for expressions denoting exactly one calendar day.
type ResolvedDate struct {
	// Date is the resolved day, normalized to midnight UTC.
	Date time.Time

	// OriginalText is the input exactly as supplied, for user-facing messages.
	OriginalText string
}

// ISO returns the canonical YYYY-MM-DD form.
func (d ResolvedDate) ISO() string {
	return d.Date.Format(DateLayout)
}

// ResolvedPeriod is the outcome for expressions denoting a closed date interval.
// Both bounds are inclusive and From never exceeds To.
type ResolvedPeriod struct {
	From time.Time
	To   time.Time

	// OriginalText is the input exactly as supplied.
	OriginalText string
}

// Days returns the number of calendar days the period spans, bounds inclusive.
func (p ResolvedPeriod) Days() int {
	return int(p.To.Sub(p.From).Hours()/24) + 1
}

// Contains reports whether day falls inside the period.
func (p ResolvedPeriod) Contains(day time.Time) bool {
	return !day.Before(p.From) && !day.After(p.To)
}

func (p ResolvedPeriod) String() string {
	return fmt.Sprintf("[%s, %s]", p.From.Format(DateLayout), p.To.Format(DateLayout))
}

// ParseOutcome is the result of resolving a date expression: either a single
// day or a period, never both. The variants are mutually exclusive by
// construction; use NewDateOutcome or NewPeriodOutcome.
type ParseOutcome struct {
	date   *ResolvedDate
	period *ResolvedPeriod
}

// NewDateOutcome wraps a single-day result.
func NewDateOutcome(d ResolvedDate) ParseOutcome {
	return ParseOutcome{date: &d}
}

// NewPeriodOutcome wraps a period result. From and To are swapped if supplied
// out of order so the ResolvedPeriod invariant holds.
func NewPeriodOutcome(p ResolvedPeriod) ParseOutcome {
	if p.To.Before(p.From) {
		p.From, p.To = p.To, p.From
	}
	return ParseOutcome{period: &p}
}

// IsPeriod reports whether the outcome is a period.
func (o ParseOutcome) IsPeriod() bool {
	return o.period != nil
}

// Date returns the single-day variant.
func (o ParseOutcome) Date() (ResolvedDate, bool) {
	if o.date == nil {
		return ResolvedDate{}, false
	}
	return *o.date, true
}

// Period returns the period variant.
func (o ParseOutcome) Period() (ResolvedPeriod, bool) {
	if o.period == nil {
		return ResolvedPeriod{}, false
	}
	return *o.period, true
}

// OriginalText returns the input text preserved in whichever variant is set.
func (o ParseOutcome) OriginalText() string {
	switch {
	case o.date != nil:
		return o.date.OriginalText
	case o.period != nil:
		return o.period.OriginalText
	default:
		return ""
	}
}

// WithOriginalText returns a copy of the outcome with the original input
// text attached to whichever variant is set.
func (o ParseOutcome) WithOriginalText(text string) ParseOutcome {
	switch {
	case o.date != nil:
		d := *o.date
		d.OriginalText = text
		return ParseOutcome{date: &d}
	case o.period != nil:
		p := *o.period
		p.OriginalText = text
		return ParseOutcome{period: &p}
	default:
		return o
	}
}

func (o ParseOutcome) String() string {
	switch {
	case o.date != nil:
		return o.date.ISO()
	case o.period != nil:
		return o.period.String()
	default:
		return "<empty>"
	}
}

// CivilDay truncates an instant to the calendar day it falls on, dropping the
// time-of-day component. All resolver arithmetic works on civil days.
func CivilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
