package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository reads leave type reference data.
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
}

// LeaveBalanceRepository owns per-employee/type/year balance rows.
type LeaveBalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)

	// CreateIfAbsent inserts the balance row unless one already exists for
	// its (employee, type, year) key. Reports whether a row was created.
	CreateIfAbsent(ctx context.Context, balance LeaveBalance) (bool, error)

	// Consume atomically moves days from remaining to used. The update is
	// guarded: it fails with ErrInsufficientBalance when remaining_days at
	// execution time is below days, so two concurrent approvals can never
	// both drain the same balance.
	Consume(ctx context.Context, balanceID string, days decimal.Decimal) error

	// Adjust applies deltas to total and carried-forward days, recomputing
	// remaining. Guarded against driving remaining negative.
	Adjust(ctx context.Context, balanceID string, deltaTotal, deltaCarried decimal.Decimal) error
}

// LeaveRequestRepository persists leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, input UpdateLeaveRequestInput) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// HasOverlapping reports whether any non-rejected request of the
	// employee overlaps [start, end]. excludeID skips one request, for
	// overlap checks during updates.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// SumPendingDays totals TotalDays over the employee's pending requests
	// of the given type whose start date falls in year, excluding excludeID.
	SumPendingDays(ctx context.Context, employeeID, leaveTypeID string, year int, excludeID string) (decimal.Decimal, error)

	// ListApprovedUnpaidOverlapping returns approved requests of unpaid
	// leave types overlapping [from, to].
	ListApprovedUnpaidOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}

// HolidayRepository reads the public holiday calendar.
type HolidayRepository interface {
	ListActiveDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
}
