package service

import (
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
	displayLayout   = "02/01/2006"
	oneDay          = 24 * time.Hour
)

// startOfDay truncates t to midnight of its calendar date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysUntil counts whole calendar days from one start-of-day to another,
// rounding partial days up. Negative when to precedes from.
func daysUntil(from, to time.Time) int {
	// Project both calendar dates onto UTC so DST transitions do not add or remove hours.
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	diff := b.Sub(a)
	days := int(diff / oneDay)
	if diff%oneDay > 0 {
		days++
	}
	return days
}

// parseCalendarDate reads a date-only or timestamp value as a calendar date in loc.
func parseCalendarDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return startOfDay(ts, loc), true
	}
	return time.Time{}, false
}

// formatTimestamp renders t the way creation timestamps are persisted (UTC, milliseconds).
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// formatDisplayDate renders a stored exam date as DD/MM/YYYY, or returns it unchanged when unparsable.
func formatDisplayDate(raw string, loc *time.Location) string {
	d, ok := parseCalendarDate(raw, loc)
	if !ok {
		return raw
	}
	return d.Format(displayLayout)
}
