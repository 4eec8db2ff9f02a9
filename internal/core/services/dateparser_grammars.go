package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

// weekdayIndex maps weekday names to Monday-based indexes (0 = Monday).
// Russian entries include accusative forms and two-letter abbreviations.
var weekdayIndex = map[string]int{
	"понедельник": 0, "пн": 0,
	"вторник": 1, "вт": 1,
	"среда": 2, "среду": 2, "ср": 2,
	"четверг": 3, "чт": 3,
	"пятница": 4, "пятницу": 4, "пт": 4,
	"суббота": 5, "субботу": 5, "сб": 5,
	"воскресенье": 6, "вс": 6,

	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1, "tues": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3, "thur": 3, "thurs": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

// monthIndex maps month names to months. Russian entries are genitive, as
// they appear after a day number ("15 февраля").
var monthIndex = map[string]time.Month{
	"января": time.January, "февраля": time.February, "марта": time.March,
	"апреля": time.April, "мая": time.May, "июня": time.June,
	"июля": time.July, "августа": time.August, "сентября": time.September,
	"октября": time.October, "ноября": time.November, "декабря": time.December,

	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// simpleRelativeOffsets is the closed set of day-offset literals.
var simpleRelativeOffsets = map[string]int{
	"сегодня":     0,
	"завтра":      1,
	"послезавтра": 2,
	"вчера":       -1,
	"позавчера":   -2,
	"today":       0,
	"tomorrow":    1,
	"yesterday":   -1,
}

var (
	weekdayPattern = regexp.MustCompile(
		`^(следующий\s+|следующую\s+|next\s+|on\s+)?(в\s+)?` +
			`(понедельник|вторник|среда|среду|четверг|пятница|пятницу|суббота|субботу|воскресенье|` +
			`пн|вт|ср|чт|пт|сб|вс|` +
			`monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
			`mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)$`)

	weekPeriodPattern = regexp.MustCompile(
		`^(эта|эту|следующая|следующую|this|next)\s+(недел[яюе]|week)$`)
	weeksOffsetPattern = regexp.MustCompile(
		`^(через|in)\s+(\d+)\s+(недел[иьюя]|weeks?)$`)
	weekOffsetSinglePattern = regexp.MustCompile(
		`^(через|in)\s+(a\s+)?(недел[юу]|week)$`)

	monthPeriodPattern = regexp.MustCompile(
		`^(этот|следующий|this|next)\s+(месяц|month)$`)

	daysOffsetPattern = regexp.MustCompile(
		`^(через|in)\s+(\d+)\s+(день|дня|дней|days?)$`)
	monthsOffsetPattern = regexp.MustCompile(
		`^(через|in)\s+(\d+)\s+(месяц[аев]?|months?)$`)
	monthOffsetSinglePattern = regexp.MustCompile(
		`^(через|in)\s+(a\s+)?(месяц|month)$`)

	dateISOPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dateDotPattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4})$`)
	// US-style month/day/year.
	dateSlashPattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	// Day-first textual dates: Russian genitive month names ("15 февраля")
	// and the English day-first form ("15 february").
	dateTextDayFirstPattern = regexp.MustCompile(
		`^(\d{1,2})\s+(января|февраля|марта|апреля|мая|июня|` +
			`июля|августа|сентября|октября|ноября|декабря|` +
			`january|february|march|april|may|june|july|august|september|october|november|december|` +
			`jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)(\s+(\d{4}))?$`)
	dateTextEnPattern = regexp.MustCompile(
		`^(january|february|march|april|may|june|july|august|september|october|november|december|` +
			`jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)\s+(\d{1,2})(st|nd|rd|th)?(,?\s+(\d{4}))?$`)
)

// mondayIndex converts time.Weekday (Sunday = 0) to a Monday-based index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// lastDayOfMonth returns the day count of the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month normalizes to the last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// validDate reports whether year/month/day names a real calendar day.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= lastDayOfMonth(year, time.Month(month))
}

// addMonthsClamped adds whole calendar months, clamping the day-of-month to
// the last valid day of the target month instead of wrapping forward.
func addMonthsClamped(ref time.Time, months int) time.Time {
	total := int(ref.Month()) - 1 + months
	year := ref.Year() + total/12
	month := time.Month(total%12 + 1)

	day := ref.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateOutcome(day time.Time) domain.ParseOutcome {
	return domain.NewDateOutcome(domain.ResolvedDate{Date: day})
}

func periodOutcome(from, to time.Time) domain.ParseOutcome {
	return domain.NewPeriodOutcome(domain.ResolvedPeriod{From: from, To: to})
}

// simpleRelativeGrammar recognizes the closed set of relative literals:
// сегодня/today, завтра/tomorrow, послезавтра, вчера/yesterday, позавчера.
type simpleRelativeGrammar struct{}

func (simpleRelativeGrammar) Name() string { return "simple-relative" }

func (simpleRelativeGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	offset, ok := simpleRelativeOffsets[expr]
	if !ok {
		return domain.ParseOutcome{}, false, nil
	}
	return dateOutcome(ref.AddDate(0, 0, offset)), true, nil
}

// weekdayGrammar recognizes bare and prefixed weekday names. The bare form
// resolves to the nearest future occurrence, rolling a same-day reference
// forward a full week; the "next" form lands one week beyond the bare form.
type weekdayGrammar struct{}

func (weekdayGrammar) Name() string { return "weekday" }

func (weekdayGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	m := weekdayPattern.FindStringSubmatch(expr)
	if m == nil {
		return domain.ParseOutcome{}, false, nil
	}

	prefix := m[1]
	isNext := strings.Contains(prefix, "следующ") || strings.Contains(prefix, "next")

	target, ok := weekdayIndex[m[3]]
	if !ok {
		return domain.ParseOutcome{}, false, nil
	}

	current := mondayIndex(ref.Weekday())
	daysAhead := (target - current + 7) % 7

	if isNext {
		// "Next X" skips the upcoming occurrence and lands a week later.
		if daysAhead == 0 {
			daysAhead = 7
		} else {
			daysAhead += 7
		}
	} else if daysAhead == 0 {
		// A bare weekday name never resolves to the reference day itself.
		daysAhead = 7
	}

	return dateOutcome(ref.AddDate(0, 0, daysAhead)), true, nil
}

// weekPeriodGrammar recognizes week periods: эта/следующая неделя, this/next
// week, через N недель / in N weeks, через неделю / in a week. All resolve to
// a Monday-anchored seven-day interval.
type weekPeriodGrammar struct{}

func (weekPeriodGrammar) Name() string { return "week-period" }

func (weekPeriodGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	monday := ref.AddDate(0, 0, -mondayIndex(ref.Weekday()))

	if m := weekPeriodPattern.FindStringSubmatch(expr); m != nil {
		start := monday
		switch m[1] {
		case "эта", "эту", "this":
			// Current week as-is.
		default: // следующая, следующую, next
			start = monday.AddDate(0, 0, 7)
		}
		return periodOutcome(start, start.AddDate(0, 0, 6)), true, nil
	}

	if m := weeksOffsetPattern.FindStringSubmatch(expr); m != nil {
		weeks, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.ParseOutcome{}, false, nil
		}
		start := monday.AddDate(0, 0, weeks*7)
		return periodOutcome(start, start.AddDate(0, 0, 6)), true, nil
	}

	if weekOffsetSinglePattern.MatchString(expr) {
		start := monday.AddDate(0, 0, 7)
		return periodOutcome(start, start.AddDate(0, 0, 6)), true, nil
	}

	return domain.ParseOutcome{}, false, nil
}

// monthPeriodGrammar recognizes этот/следующий месяц and this/next month,
// resolving to the first-to-last calendar day of the named month.
type monthPeriodGrammar struct{}

func (monthPeriodGrammar) Name() string { return "month-period" }

func (monthPeriodGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	m := monthPeriodPattern.FindStringSubmatch(expr)
	if m == nil {
		return domain.ParseOutcome{}, false, nil
	}

	year, month := ref.Year(), ref.Month()
	if m[1] == "следующий" || m[1] == "next" {
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, lastDayOfMonth(year, month), 0, 0, 0, 0, time.UTC)
	return periodOutcome(start, end), true, nil
}

// offsetGrammar recognizes через N дней / in N days, через N месяцев / in N
// months and через месяц / in a month. Month offsets clamp the day-of-month
// to the last valid day of the target month.
type offsetGrammar struct{}

func (offsetGrammar) Name() string { return "offset" }

func (offsetGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	if m := daysOffsetPattern.FindStringSubmatch(expr); m != nil {
		days, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.ParseOutcome{}, false, nil
		}
		return dateOutcome(ref.AddDate(0, 0, days)), true, nil
	}

	if m := monthsOffsetPattern.FindStringSubmatch(expr); m != nil {
		months, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.ParseOutcome{}, false, nil
		}
		return dateOutcome(addMonthsClamped(ref, months)), true, nil
	}

	if monthOffsetSinglePattern.MatchString(expr) {
		return dateOutcome(addMonthsClamped(ref, 1)), true, nil
	}

	return domain.ParseOutcome{}, false, nil
}

// absoluteGrammar recognizes numeric and textual absolute dates. Textual
// dates without a year refer to the future: the reference year, or the next
// one when the day has already passed.
type absoluteGrammar struct{}

func (absoluteGrammar) Name() string { return "absolute" }

func (absoluteGrammar) Match(expr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	if m := dateISOPattern.FindStringSubmatch(expr); m != nil {
		return buildAbsolute(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	// DD.MM.YYYY or DD.MM.YY.
	if m := dateDotPattern.FindStringSubmatch(expr); m != nil {
		return buildAbsolute(expandYear(atoi(m[3])), atoi(m[2]), atoi(m[1]))
	}

	// MM/DD/YYYY or MM/DD/YY.
	if m := dateSlashPattern.FindStringSubmatch(expr); m != nil {
		return buildAbsolute(expandYear(atoi(m[3])), atoi(m[1]), atoi(m[2]))
	}

	if m := dateTextDayFirstPattern.FindStringSubmatch(expr); m != nil {
		month, ok := monthIndex[m[2]]
		if !ok {
			return domain.ParseOutcome{}, false, nil
		}
		return buildTextual(atoi(m[1]), month, m[4], ref)
	}

	if m := dateTextEnPattern.FindStringSubmatch(expr); m != nil {
		month, ok := monthIndex[m[1]]
		if !ok {
			return domain.ParseOutcome{}, false, nil
		}
		return buildTextual(atoi(m[2]), month, m[5], ref)
	}

	return domain.ParseOutcome{}, false, nil
}

// buildAbsolute validates and constructs a fully specified date.
func buildAbsolute(year, month, day int) (domain.ParseOutcome, bool, error) {
	if !validDate(year, month, day) {
		return domain.ParseOutcome{}, true, domain.ErrInvalidCalendarDate
	}
	return dateOutcome(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)), true, nil
}

// buildTextual constructs a textual date, inferring the year when omitted so
// the result never falls strictly before the reference day.
func buildTextual(day int, month time.Month, yearStr string, ref time.Time) (domain.ParseOutcome, bool, error) {
	yearStr = strings.TrimSpace(yearStr)
	if yearStr != "" {
		return buildAbsolute(atoi(yearStr), int(month), day)
	}

	year := ref.Year()
	if !validDate(year, int(month), day) ||
		time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Before(ref) {
		year++
	}
	return buildAbsolute(year, int(month), day)
}

// expandYear widens a two-digit year into the 2000s.
func expandYear(year int) int {
	if year < 100 {
		return year + 2000
	}
	return year
}

// atoi converts digits already validated by a pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
