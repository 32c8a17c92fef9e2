package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysBetween_MondayToFriday(t *testing.T) {
	t.Parallel()

	// 2025-06-02 is a Monday
	breakdown, err := WorkingDaysBetween(date(2025, 6, 2), date(2025, 6, 6), nil)

	require.NoError(t, err)
	assert.Equal(t, 5, breakdown.WorkingDays)
	assert.Equal(t, 0, breakdown.WeekendDays)
	assert.Equal(t, 0, breakdown.HolidayDays)
	assert.Equal(t, 5, breakdown.TotalCalendarDays)
}

func TestWorkingDaysBetween_WeekendOnly(t *testing.T) {
	t.Parallel()

	// Saturday to Sunday, no holidays: zero working days
	breakdown, err := WorkingDaysBetween(date(2025, 6, 7), date(2025, 6, 8), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, breakdown.WorkingDays)
	assert.Equal(t, 2, breakdown.WeekendDays)
	assert.Equal(t, 2, breakdown.TotalCalendarDays)
}

func TestWorkingDaysBetween_HolidayOnWeekdayCountsAsHoliday(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{date(2025, 6, 4)} // Wednesday

	breakdown, err := WorkingDaysBetween(date(2025, 6, 2), date(2025, 6, 6), holidays)

	require.NoError(t, err)
	assert.Equal(t, 4, breakdown.WorkingDays)
	assert.Equal(t, 1, breakdown.HolidayDays)
	assert.Equal(t, 0, breakdown.WeekendDays)
}

func TestWorkingDaysBetween_HolidayOnWeekendCountsAsWeekend(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{date(2025, 6, 7)} // Saturday

	breakdown, err := WorkingDaysBetween(date(2025, 6, 6), date(2025, 6, 9), holidays)

	require.NoError(t, err)
	assert.Equal(t, 2, breakdown.WorkingDays) // Fri + Mon
	assert.Equal(t, 2, breakdown.WeekendDays)
	assert.Equal(t, 0, breakdown.HolidayDays)
}

func TestWorkingDaysBetween_SingleDay(t *testing.T) {
	t.Parallel()

	breakdown, err := WorkingDaysBetween(date(2025, 6, 3), date(2025, 6, 3), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, breakdown.WorkingDays)
	assert.Equal(t, 1, breakdown.TotalCalendarDays)
}

func TestWorkingDaysBetween_EndBeforeStart(t *testing.T) {
	t.Parallel()

	_, err := WorkingDaysBetween(date(2025, 6, 6), date(2025, 6, 2), nil)

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestWorkingDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 1, 0, 0, time.UTC)

	breakdown, err := WorkingDaysBetween(start, end, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, breakdown.TotalCalendarDays)
}

func TestWorkingDaysBetween_PartitionProperty(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{
		date(2025, 1, 1),
		date(2025, 5, 1),
		date(2025, 12, 25),
		date(2025, 12, 27), // Saturday holiday
	}

	ranges := []struct {
		start, end time.Time
	}{
		{date(2025, 1, 1), date(2025, 1, 31)},
		{date(2025, 4, 28), date(2025, 5, 4)},
		{date(2025, 12, 20), date(2025, 12, 31)},
		{date(2025, 1, 1), date(2025, 12, 31)},
	}

	for _, r := range ranges {
		breakdown, err := WorkingDaysBetween(r.start, r.end, holidays)
		require.NoError(t, err)

		sum := breakdown.WorkingDays + breakdown.WeekendDays + breakdown.HolidayDays
		assert.Equal(t, breakdown.TotalCalendarDays, sum)

		expectedTotal := int(r.end.Sub(r.start).Hours()/24) + 1
		assert.Equal(t, expectedTotal, breakdown.TotalCalendarDays)
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	first, last := MonthBounds(2025, time.February)
	assert.Equal(t, date(2025, 2, 1), first)
	assert.Equal(t, date(2025, 2, 28), last)
}
