package http

import (
	"net/http"

	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/handler/http/response"
	"github.com/quantohr/payroll-backend-go/internal/pkg/calendar"
	"github.com/quantohr/payroll-backend-go/internal/pkg/validator"
)

type CalendarHandler interface {
	WorkingDays(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	holidayRepo leave.HolidayRepository
}

func NewCalendarHandler(holidayRepo leave.HolidayRepository) CalendarHandler {
	return &CalendarHandlerImpl{holidayRepo: holidayRepo}
}

// WorkingDays implements CalendarHandler.
func (c *CalendarHandlerImpl) WorkingDays(w http.ResponseWriter, r *http.Request) {
	start, ok := validator.IsValidDate(r.URL.Query().Get("start"))
	if !ok {
		response.BadRequest(w, "start must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	end, ok := validator.IsValidDate(r.URL.Query().Get("end"))
	if !ok {
		response.BadRequest(w, "end must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	holidays, err := c.holidayRepo.ListActiveDatesInRange(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	breakdown, err := calendar.WorkingDaysBetween(start, end, holidays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{
		"working_days":        breakdown.WorkingDays,
		"weekend_days":        breakdown.WeekendDays,
		"holiday_days":        breakdown.HolidayDays,
		"total_calendar_days": breakdown.TotalCalendarDays,
	})
}
