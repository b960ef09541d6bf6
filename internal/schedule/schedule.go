package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/schedule-viewer/pkg/dateutil"
)

// dayNames holds the Korean weekday labels, indexed by time.Weekday (Sunday = 0)
var dayNames = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// weekendHolidayTurns lists the turn codes that carry weekend/holiday styling
// when they fall on a non-working day
var weekendHolidayTurns = map[string]struct{}{
	"31": {}, "32": {}, "33": {}, "34": {}, "35": {}, "36": {}, "37": {},
}

// Cell style tokens. The UI maps these to concrete CSS classes.
const (
	DayClassRed  = "day-red"  // public holidays and Sundays
	DayClassBlue = "day-blue" // Saturdays

	TurnClassWeekend = "turn-weekend" // weekend/holiday turn code on a non-working day
	TurnClassOff     = "turn-off"     // turn contains the off marker
	TurnClassStandby = "turn-standby" // turn contains the standby marker
	TurnClassMulti   = "turn-multi"   // turn spans multiple days
)

// Turn text markers
const (
	offMarker      = "휴"
	standbyMarker  = "대"
	rangeSeparator = "~"
)

// TodayDateStr returns the current local date as yyyy-MM-dd
func TodayDateStr() string {
	return dateutil.FormatDate(time.Now())
}

// TodayMonthStr returns the current local month as yyyy-MM
func TodayMonthStr() string {
	return dateutil.FormatMonth(time.Now())
}

// InitialRange returns the default query range on first load: today through
// today + 30 days, both inclusive.
func InitialRange(today time.Time) (start, end string) {
	today = dateutil.StartOfDay(today)
	return dateutil.FormatDate(today), dateutil.FormatDate(today.AddDate(0, 0, 30))
}

// MonthRange computes the query range for a yyyy-MM month selection. The
// start is clamped to today so past days of the current month are never
// queried. ok is false when the month is malformed or lies entirely in the
// past; callers must treat that as a validation failure, not a fetch.
func MonthRange(month string, today time.Time) (start, end string, ok bool) {
	selected, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", false
	}

	today = dateutil.StartOfDay(today)
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, today.Location())
	last := dateutil.MonthEnd(first)

	if last.Before(today) {
		return "", "", false
	}

	queryStart := first
	if first.Before(today) {
		queryStart = today
	}

	return dateutil.FormatDate(queryStart), dateutil.FormatDate(last), true
}

// DateRange enumerates every calendar date from start to end inclusive,
// ascending, as yyyy-MM-dd strings.
func DateRange(start, end string) ([]string, error) {
	startDate, err := time.Parse(dateutil.ISODate, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse(dateutil.ISODate, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date %s is after end date %s", start, end)
	}

	var dates []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, dateutil.FormatDate(d))
	}
	return dates, nil
}

// DayName returns the Korean weekday label for a yyyy-MM-dd date, or "" if
// the date does not parse.
func DayName(date string) string {
	d, err := time.Parse(dateutil.ISODate, date)
	if err != nil {
		return ""
	}
	return dayNames[d.Weekday()]
}

// DayColorClass classifies a date header cell. Holiday membership wins over
// the weekday, Sundays and holidays share the red token.
func DayColorClass(date string, holidays map[string]struct{}) string {
	if _, ok := holidays[date]; ok {
		return DayClassRed
	}

	d, err := time.Parse(dateutil.ISODate, date)
	if err != nil {
		return ""
	}
	switch d.Weekday() {
	case time.Saturday:
		return DayClassBlue
	case time.Sunday:
		return DayClassRed
	}
	return ""
}

// TurnColorClass classifies a turn cell. Rules are checked in precedence
// order and the first match wins:
//
//  1. weekend-or-holiday date with a turn code from the weekend allow-list
//  2. turn contains the off marker
//  3. turn contains the standby marker
//  4. turn contains the multi-day range separator
//  5. no special styling
func TurnColorClass(turn, date string, holidays map[string]struct{}) string {
	offDay := false
	if _, ok := holidays[date]; ok {
		offDay = true
	} else if d, err := time.Parse(dateutil.ISODate, date); err == nil && dateutil.IsWeekend(d) {
		offDay = true
	}

	if offDay {
		if _, ok := weekendHolidayTurns[turn]; ok {
			return TurnClassWeekend
		}
	}
	if strings.Contains(turn, offMarker) {
		return TurnClassOff
	}
	if strings.Contains(turn, standbyMarker) {
		return TurnClassStandby
	}
	if strings.Contains(turn, rangeSeparator) {
		return TurnClassMulti
	}
	return ""
}
