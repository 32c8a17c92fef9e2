package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")

	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrCrossYearRange      = errors.New("leave request must not span calendar years")
	ErrZeroWorkingDays     = errors.New("requested range contains no working days")
	ErrOverlappingRequest  = errors.New("an active leave request already covers part of this range")
	ErrNoBalanceRecord     = errors.New("no leave balance record exists for this employee, type and year")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrAlreadyProcessed    = errors.New("leave request already processed")
	ErrNegativeAdjustment  = errors.New("adjustment would drive remaining balance negative")
)
