package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, May 1st 2024.
var refWednesday = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"today", "2024-05-01"},
		{"tomorrow", "2024-05-02"},
		{"Tomorrow afternoon", "2024-05-02"},
		{"day after tomorrow", "2024-05-03"},
		{"in 3 days", "2024-05-04"},
		{"in 2 weeks", "2024-05-15"},
		{"next friday", "2024-05-03"},
		{"saturday", "2024-05-04"},
		{"2024-12-25", "2024-12-25"},
		{"2024/6/5", "2024-06-05"},
		{"june 3rd", "2024-06-03"},
		{"3rd of June", "2024-06-03"},
		{"May 5", "2024-05-05"},
		{"December 25, 2025", "2025-12-25"},
		{"12/25", "2024-12-25"},
		{"12/25/2025", "2025-12-25"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			out := ParseDate(tc.input, refWednesday)
			require.True(t, out.OK(), "reason: %s", out.Reason)
			assert.Equal(t, tc.want, out.Value)
		})
	}
}

func TestParseDateWeekdayResolvesToFuture(t *testing.T) {
	// Monday has already passed this week; the next one is May 6th.
	out := ParseDate("Monday", refWednesday)
	require.True(t, out.OK())
	assert.Equal(t, "2024-05-06", out.Value)

	// The reference day's own weekday means next week, not today.
	out = ParseDate("wednesday", refWednesday)
	require.True(t, out.OK())
	assert.Equal(t, "2024-05-08", out.Value)
}

func TestParseDateWithoutYearPrefersFuture(t *testing.T) {
	// March has passed relative to May 1st, so resolve into next year.
	out := ParseDate("March 5", refWednesday)
	require.True(t, out.OK())
	assert.Equal(t, "2025-03-05", out.Value)
}

func TestParseDateRejections(t *testing.T) {
	for _, input := range []string{"", "whenever works", "2024-02-31", "February 31"} {
		out := ParseDate(input, refWednesday)
		assert.False(t, out.OK(), "expected rejection for %q", input)
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"3 PM", "15:00"},
		{"3:45 pm", "15:45"},
		{"12 AM", "00:00"},
		{"12 PM", "12:00"},
		{"noon", "12:00"},
		{"12 noon", "12:00"},
		{"midnight", "00:00"},
		{"15:00", "15:00"},
		{"9:05 am", "09:05"},
		{"0:30", "00:30"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			out := ParseTime(tc.input)
			require.True(t, out.OK(), "reason: %s", out.Reason)
			assert.Equal(t, tc.want, out.Value)
		})
	}
}

// An hour without an am/pm marker is taken literally in 24-hour form. Changing
// this (say, to default to business hours) must be a deliberate decision.
func TestParseTimeUnmarkedHourIsLiteral(t *testing.T) {
	out := ParseTime("3")
	require.True(t, out.OK())
	assert.Equal(t, "03:00", out.Value)
}

func TestParseTimeRejections(t *testing.T) {
	for _, input := range []string{"", "sometime", "3:75", "25", "13 pm", "0 am"} {
		out := ParseTime(input)
		assert.False(t, out.OK(), "expected rejection for %q", input)
	}
}

func TestCurrentTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01 18:45 UTC", CurrentTime(now, "UTC"))

	// Unknown zones fall back to UTC rather than failing.
	assert.True(t, strings.HasSuffix(CurrentTime(now, "Not/AZone"), "UTC"))
}
