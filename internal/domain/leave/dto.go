package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveRequestRequest struct {
	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

type DecisionRequest struct {
	Comment string `json:"comment"`
}

type AdjustBalanceRequest struct {
	EmployeeID        string          `json:"employee_id"`
	LeaveTypeID       string          `json:"leave_type_id"`
	Year              int             `json:"year"`
	DeltaTotalDays    decimal.Decimal `json:"delta_total_days"`
	DeltaCarriedDays  decimal.Decimal `json:"delta_carried_days"`
	AdjustmentComment string          `json:"comment"`
}

func (r AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}
	if r.DeltaTotalDays.IsZero() && r.DeltaCarriedDays.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "delta_total_days", Message: "at least one delta must be non-zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InitializeYearRequest struct {
	Year int `json:"year"`
}

func (r InitializeYearRequest) Validate() error {
	if r.Year < 2000 {
		return validator.ValidationErrors{{Field: "year", Message: "must be 2000 or later"}}
	}
	return nil
}

// UpdateLeaveRequestInput carries partial updates into the repository.
type UpdateLeaveRequestInput struct {
	ID              string
	LeaveTypeID     *string
	StartDate       *time.Time
	EndDate         *time.Time
	TotalDays       *decimal.Decimal
	Reason          *string
	Status          *LeaveRequestStatus
	ApproverID      *string
	ApprovedAt      *time.Time
	ApproverComment *string
}

type LeaveRequestFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Status      *LeaveRequestStatus
	Year        *int
}
