package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the calendar date layout used throughout the application
const ISODate = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// MonthStart returns the first day of the month containing the given date
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthEnd returns the last day of the month containing the given date
func MonthEnd(date time.Time) time.Time {
	return MonthStart(date).AddDate(0, 1, -1)
}

// FormatDate formats a date as yyyy-MM-dd
func FormatDate(date time.Time) string {
	return date.Format(ISODate)
}

// FormatMonth formats a date as yyyy-MM
func FormatMonth(date time.Time) string {
	return date.Format("2006-01")
}

// ParseDate parses a date string in various formats.
// The backend is not consistent about date columns: plain calendar dates and
// full timestamps both occur, so several layouts are attempted in order.
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		ISODate,
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}
