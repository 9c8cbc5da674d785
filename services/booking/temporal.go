package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Temporal parsing for the date and time booking steps. Free-form phrases are
// normalized to YYYY-MM-DD and HH:MM (24-hour). Date resolution prefers the
// future: an expression lacking a year resolves to its nearest occurrence at
// or after the reference instant, never a past date.

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "sept": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	ordinalRe  = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)
	weekdayRe  = regexp.MustCompile(`\b(?:(next|this|coming)\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	inAheadRe  = regexp.MustCompile(`\bin\s+(\d+)\s+(day|week)s?\b`)
	isoDateRe  = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)
	slashRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	monthDayRe = regexp.MustCompile(`\b([a-z]+)\s+(\d{1,2})(?:,?\s+(\d{4}))?\b`)
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})\s+(?:of\s+)?([a-z]+)(?:,?\s+(\d{4}))?\b`)
	clockRe    = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// ParseDate interprets a natural-language date expression relative to ref.
func ParseDate(text string, ref time.Time) Outcome {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return reject("no date found")
	}
	s = ordinalRe.ReplaceAllString(s, "$1")
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch {
	case strings.Contains(s, "day after tomorrow"):
		return accept(formatDate(today.AddDate(0, 0, 2)))
	case strings.Contains(s, "tomorrow"):
		return accept(formatDate(today.AddDate(0, 0, 1)))
	case strings.Contains(s, "today") || strings.Contains(s, "tonight"):
		return accept(formatDate(today))
	}

	if m := inAheadRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		days := n
		if m[2] == "week" {
			days = n * 7
		}
		return accept(formatDate(today.AddDate(0, 0, days)))
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		target := weekdayNames[m[2]]
		ahead := (int(target) - int(today.Weekday()) + 7) % 7
		// "friday" on a Friday means the coming one, not today.
		if ahead == 0 {
			ahead = 7
		}
		return accept(formatDate(today.AddDate(0, 0, ahead)))
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, time.Month(month), day, ref.Location()); ok {
			return accept(formatDate(d))
		}
		return reject("no valid calendar date found")
	}

	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[m[1]]; ok {
			day, _ := strconv.Atoi(m[2])
			return resolveMonthDay(month, day, m[3], today)
		}
	}
	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			return resolveMonthDay(month, day, m[3], today)
		}
	}

	if m := slashRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			if d, ok := makeDate(year, time.Month(month), day, ref.Location()); ok {
				return accept(formatDate(d))
			}
			return reject("no valid calendar date found")
		}
		return resolveMonthDay(time.Month(month), day, "", today)
	}

	return reject("no date found")
}

// resolveMonthDay turns a month/day pair into a full date. Without a year the
// nearest future occurrence wins.
func resolveMonthDay(month time.Month, day int, yearStr string, today time.Time) Outcome {
	if yearStr != "" {
		year, _ := strconv.Atoi(yearStr)
		if d, ok := makeDate(year, month, day, today.Location()); ok {
			return accept(formatDate(d))
		}
		return reject("no valid calendar date found")
	}
	d, ok := makeDate(today.Year(), month, day, today.Location())
	if !ok {
		return reject("no valid calendar date found")
	}
	if d.Before(today) {
		d, ok = makeDate(today.Year()+1, month, day, today.Location())
		if !ok {
			return reject("no valid calendar date found")
		}
	}
	return accept(formatDate(d))
}

// makeDate builds a date and verifies the components round-trip, catching
// overflow like February 31 which time.Date silently normalizes.
func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func formatDate(d time.Time) string { return d.Format("2006-01-02") }

// ParseTime extracts a time of day from free-form text. The literals "noon"
// and "midnight" are checked before the general clock pattern. An hour typed
// without an am/pm marker is taken literally in 24-hour form, so "3" means
// 03:00 rather than 15:00.
func ParseTime(text string) Outcome {
	s := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(s, "noon") {
		return accept("12:00")
	}
	if strings.Contains(s, "midnight") {
		return accept("00:00")
	}
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return reject("no time found")
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := m[3]
	if minute > 59 {
		return reject("minutes out of range")
	}
	if meridiem != "" && (hour < 1 || hour > 12) {
		return reject("hour out of range for am/pm")
	}
	if meridiem == "" && hour > 23 {
		return reject("hour out of range")
	}
	if meridiem == "pm" && hour != 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return accept(fmt.Sprintf("%02d:%02d", hour, minute))
}

// CurrentTime formats the present instant in the given zone so the dialogue
// can ground relative phrases like "tomorrow". Unknown zones fall back to UTC.
func CurrentTime(now time.Time, zone string) string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02 15:04 MST")
}
