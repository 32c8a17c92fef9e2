package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/pkg/calendar"
	"github.com/quantohr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInvalidDateRange), errors.Is(err, calendar.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrCrossYearRange):
		BadRequest(w, "Leave request must not span calendar years", nil)
	case errors.Is(err, leave.ErrZeroWorkingDays):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An active leave request already covers part of this range")
	case errors.Is(err, leave.ErrNoBalanceRecord):
		BadRequest(w, "No leave balance record exists for this employee, type and year", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNegativeAdjustment):
		BadRequest(w, "Adjustment would drive remaining balance negative", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Month must be 1-12 and year 2000 or later", nil)
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunExists):
		Conflict(w, "A payroll run for this period already exists")
	case errors.Is(err, payroll.ErrAlreadyFinalized):
		Conflict(w, "Payroll run already finalized")
	case errors.Is(err, payroll.ErrCannotDeleteFinalized):
		Conflict(w, "Finalized payroll runs cannot be deleted")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
