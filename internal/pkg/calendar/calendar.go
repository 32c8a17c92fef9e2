// Package calendar classifies calendar days for leave and payroll
// computations. It is a pure leaf: no storage, no clock.
package calendar

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date must not be before start date")

// DayBreakdown partitions an inclusive date range.
// WorkingDays + WeekendDays + HolidayDays == TotalCalendarDays always holds.
type DayBreakdown struct {
	WorkingDays       int
	WeekendDays       int
	HolidayDays       int
	TotalCalendarDays int
}

const dateLayout = "2006-01-02"

// WorkingDaysBetween walks every day in [start, end] inclusive and classifies
// it. Saturdays and Sundays count as weekend even when they are also public
// holidays; a non-weekend day matching a holiday counts as holiday; everything
// else is a working day.
func WorkingDaysBetween(start, end time.Time, holidays []time.Time) (DayBreakdown, error) {
	start = truncate(start)
	end = truncate(end)

	if end.Before(start) {
		return DayBreakdown{}, ErrInvalidRange
	}

	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Format(dateLayout)] = struct{}{}
	}

	var breakdown DayBreakdown
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		breakdown.TotalCalendarDays++

		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			breakdown.WeekendDays++
			continue
		}
		if _, ok := holidaySet[day.Format(dateLayout)]; ok {
			breakdown.HolidayDays++
			continue
		}
		breakdown.WorkingDays++
	}

	return breakdown, nil
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
