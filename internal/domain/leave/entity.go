package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType entity. Reference data maintained by the surrounding system.
type LeaveType struct {
	ID   string
	Name string

	DefaultDaysPerYear decimal.Decimal
	IsPaid             bool
	RequiresApproval   bool
	MaxConsecutiveDays *int

	AllowCarryForward bool
	CarryForwardCap   *decimal.Decimal

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveBalance entity, one row per (employee, leave type, year).
// Invariant: RemainingDays = TotalDays + CarriedForwardDays - UsedDays.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	TotalDays          decimal.Decimal
	UsedDays           decimal.Decimal
	RemainingDays      decimal.Decimal
	CarriedForwardDays decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// PendingDays is the sum of this employee/type/year's pending request
	// days. Computed on read, never stored; pending requests are the
	// reservation.
	PendingDays decimal.Decimal

	// Joined fields
	LeaveTypeName *string
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays decimal.Decimal

	Reason string

	Status          LeaveRequestStatus
	ApproverID      *string
	ApprovedAt      *time.Time
	ApproverComment *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	LeaveTypeName *string
	EmployeeName  *string
}

// PublicHoliday entity. Reference data consumed by the calendar package.
type PublicHoliday struct {
	ID       string
	Name     string
	Date     time.Time
	IsActive bool
}
