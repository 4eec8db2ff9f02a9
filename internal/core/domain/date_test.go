package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestResolvedDate_ISO tests canonical formatting
func TestResolvedDate_ISO(t *testing.T) {
	d := ResolvedDate{Date: day(2026, time.February, 3), OriginalText: "завтра"}
	assert.Equal(t, "2026-02-03", d.ISO())
	assert.Equal(t, "завтра", d.OriginalText)
}

// TestResolvedPeriod_Days tests inclusive span counting
func TestResolvedPeriod_Days(t *testing.T) {
	week := ResolvedPeriod{From: day(2026, time.February, 9), To: day(2026, time.February, 15)}
	assert.Equal(t, 7, week.Days())

	single := ResolvedPeriod{From: day(2026, time.March, 1), To: day(2026, time.March, 1)}
	assert.Equal(t, 1, single.Days())
}

// TestResolvedPeriod_Contains tests inclusive bounds
func TestResolvedPeriod_Contains(t *testing.T) {
	p := ResolvedPeriod{From: day(2026, time.February, 9), To: day(2026, time.February, 15)}

	assert.True(t, p.Contains(day(2026, time.February, 9)))
	assert.True(t, p.Contains(day(2026, time.February, 15)))
	assert.True(t, p.Contains(day(2026, time.February, 12)))
	assert.False(t, p.Contains(day(2026, time.February, 8)))
	assert.False(t, p.Contains(day(2026, time.February, 16)))
}

// TestParseOutcome_Exclusive tests that the variants are mutually exclusive
func TestParseOutcome_Exclusive(t *testing.T) {
	dateOutcome := NewDateOutcome(ResolvedDate{Date: day(2026, time.February, 3)})
	assert.False(t, dateOutcome.IsPeriod())
	_, ok := dateOutcome.Date()
	assert.True(t, ok)
	_, ok = dateOutcome.Period()
	assert.False(t, ok)

	periodOutcome := NewPeriodOutcome(ResolvedPeriod{
		From: day(2026, time.February, 9),
		To:   day(2026, time.February, 15),
	})
	assert.True(t, periodOutcome.IsPeriod())
	_, ok = periodOutcome.Date()
	assert.False(t, ok)
	_, ok = periodOutcome.Period()
	assert.True(t, ok)
}

// TestNewPeriodOutcome_SwapsBounds tests the from<=to invariant is enforced at construction
func TestNewPeriodOutcome_SwapsBounds(t *testing.T) {
	outcome := NewPeriodOutcome(ResolvedPeriod{
		From: day(2026, time.February, 15),
		To:   day(2026, time.February, 9),
	})

	p, ok := outcome.Period()
	require.True(t, ok)
	assert.True(t, p.From.Before(p.To))
}

// TestCivilDay tests that the time-of-day component is dropped
func TestCivilDay(t *testing.T) {
	instant := time.Date(2026, time.February, 2, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, day(2026, time.February, 2), CivilDay(instant))
}
