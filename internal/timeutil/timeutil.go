// Package timeutil formats and parses the times the CLI shows and accepts.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Working time units. A day of work is 8 hours, a week 5 days.
const (
	SecondsPerMinute  = 60
	SecondsPerHour    = 60 * SecondsPerMinute
	SecondsPerWorkDay = 8 * SecondsPerHour
	SecondsPerWeek    = 5 * SecondsPerWorkDay
)

// WorkDuration renders seconds as working time, e.g. "1w 2d 3h 4m 5s".
// Leading zero units are dropped; zero renders as "0s". With aligned set,
// every unit is zero padded and kept so columns line up.
func WorkDuration(seconds int, aligned bool) string {
	units := []struct {
		per    int
		suffix string
	}{
		{SecondsPerWeek, "w"},
		{SecondsPerWorkDay, "d"},
		{SecondsPerHour, "h"},
		{SecondsPerMinute, "m"},
		{1, "s"},
	}

	parts := make([]string, 0, len(units))
	rest := seconds
	for _, u := range units {
		n := rest / u.per
		rest %= u.per
		if aligned {
			parts = append(parts, fmt.Sprintf("%02d%s", n, u.suffix))
			continue
		}
		if n == 0 && len(parts) == 0 && u.suffix != "s" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
	}

	return strings.Join(parts, " ")
}

// ShortDate renders a day compactly: "Today" for today, weekday and date
// within the current year, and the full date otherwise.
func ShortDate(t time.Time, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return "Today"
	case ty == ny:
		return t.Format("Mon Jan 02")
	default:
		return t.Format("Mon Jan 02 2006")
	}
}

// ShortTime renders a wall clock time as HH:MM.
func ShortTime(t time.Time) string {
	return t.Format("15:04")
}

// ParseTimeFlag parses the --time flag accepted by start, stop, cancel and
// switch. Accepted forms, tried in order:
//
//	-15m / +5m      offset from now (any unit time.ParseDuration accepts)
//	18:45           wall clock time today
//	2006-01-02 15:04
//	RFC 3339
//
// An empty value means now.
func ParseTimeFlag(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}

	if strings.HasPrefix(value, "-") || strings.HasPrefix(value, "+") {
		offset, err := time.ParseDuration(strings.TrimPrefix(value, "+"))
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time offset %q: %w", value, err)
		}
		return now.Add(offset), nil
	}

	if clock, err := time.ParseInLocation("15:04", value, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
	}

	if t, err := time.ParseInLocation("2006-01-02 15:04", value, now.Location()); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("failed to parse time %q", value)
}
