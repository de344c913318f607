// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to midnight of its calendar day in loc. A nil loc
// means t's own location.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date of now in loc, normalised to UTC midnight.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now, loc)
}

// ParseDate parses YYYY-MM-DD into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsFuture reports whether date is strictly after today's calendar date.
// Both sides are compared as calendar days.
func IsFuture(date, now time.Time, loc *time.Location) bool {
	return DateOf(date, time.UTC).After(Today(now, loc))
}
