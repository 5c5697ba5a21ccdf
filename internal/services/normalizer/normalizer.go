// Package normalizer turns heterogeneous spreadsheet date cells into calendar
// dates and leave periods.
//
// A cell is matched against an ordered list of independent recognizers; the
// first one that produces a real calendar date wins. Failing to parse is an
// expected outcome and is reported with a false result, never a panic.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/utils"
)

// dateMatcher recognizes one date shape.
type dateMatcher func(token string) (models.Date, bool)

var (
	dayMonthYearPattern = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})$`)
	monthYearPattern    = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{4}|\d{2})$`)
	monthNamePattern    = regexp.MustCompile(`^([a-z]{3,})\.?(?:\s+de)?[\s/.\-]*(\d{4}|\d{2})$`)
	isoPattern          = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

	rangePattern = regexp.MustCompile(
		`^(\d{1,2}[/.\-]\d{1,2}[/.\-](?:\d{4}|\d{2}))\s*(?:-|a|to|ate)\s*(\d{1,2}[/.\-]\d{1,2}[/.\-](?:\d{4}|\d{2}))$`)
)

// singleDateMatchers is the priority order of ParseSingleDate.
var singleDateMatchers = []dateMatcher{
	matchDayMonthYear,
	matchMonthYear,
	matchMonthNameYear,
	matchISO,
}

// ParseSingleDate parses one date token. Accepted shapes, in priority order:
// DD/MM/YYYY or DD/MM/YY, MM/YYYY or MM/YY (day 1), month name plus year
// (jan/2025, Jan-25, janeiro/2025) and ISO YYYY-MM-DD.
func ParseSingleDate(token string) (models.Date, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Date{}, false
	}
	for _, match := range singleDateMatchers {
		if d, ok := match(token); ok {
			return d, true
		}
	}
	return models.Date{}, false
}

// ParsePeriod interprets a leave-start cell.
//
// An explicit range "<date> - <date>", "<date> a <date>" or "<date> to <date>"
// yields a custom range when both ends are DD/MM/YYYY-family dates. Otherwise
// the whole token is parsed as a single start date. A custom range whose start
// is after its end is still returned; callers flag it.
func ParsePeriod(token string) models.ParsedPeriod {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return models.InvalidPeriod(token)
	}

	if m := rangePattern.FindStringSubmatch(utils.FoldKey(trimmed)); m != nil {
		start, okStart := matchDayMonthYear(m[1])
		end, okEnd := matchDayMonthYear(m[2])
		if okStart && okEnd {
			return models.CustomRange(start, end, token)
		}
	}

	if start, ok := ParseSingleDate(trimmed); ok {
		return models.StartOnly(start, token)
	}
	return models.InvalidPeriod(token)
}

// NormalizeYear expands two-digit years: 00-49 become 2000-2049 and 50-99
// become 1950-1999. Other years are returned unchanged.
func NormalizeYear(year, digits int) int {
	if digits != 2 {
		return year
	}
	if year < 50 {
		return 2000 + year
	}
	return 1900 + year
}

func matchDayMonthYear(token string) (models.Date, bool) {
	m := dayMonthYearPattern.FindStringSubmatch(token)
	if m == nil {
		return models.Date{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return models.NewDate(parseYear(m[3]), time.Month(month), day)
}

func matchMonthYear(token string) (models.Date, bool) {
	m := monthYearPattern.FindStringSubmatch(token)
	if m == nil {
		return models.Date{}, false
	}
	month, _ := strconv.Atoi(m[1])
	return models.NewDate(parseYear(m[2]), time.Month(month), 1)
}

func matchMonthNameYear(token string) (models.Date, bool) {
	m := monthNamePattern.FindStringSubmatch(utils.FoldKey(token))
	if m == nil {
		return models.Date{}, false
	}
	month, ok := LookupMonth(m[1])
	if !ok {
		return models.Date{}, false
	}
	return models.NewDate(parseYear(m[2]), month, 1)
}

func matchISO(token string) (models.Date, bool) {
	m := isoPattern.FindStringSubmatch(token)
	if m == nil {
		return models.Date{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return models.NewDate(year, time.Month(month), day)
}

// parseYear reads a 2- or 4-digit year captured by one of the patterns.
func parseYear(s string) int {
	year, _ := strconv.Atoi(s)
	return NormalizeYear(year, len(s))
}
