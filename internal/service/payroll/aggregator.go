package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
)

// Aggregator computes the loss-of-pay day count feeding the pro-rata math:
// absences recorded by the attendance system plus approved unpaid leave,
// clipped to the month.
type Aggregator struct {
	attendanceRepo attendance.Repository
	requestRepo    leave.LeaveRequestRepository
}

func NewAggregator(attendanceRepo attendance.Repository, requestRepo leave.LeaveRequestRepository) *Aggregator {
	return &Aggregator{attendanceRepo: attendanceRepo, requestRepo: requestRepo}
}

func (a *Aggregator) LossOfPayDays(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (decimal.Decimal, error) {
	absences, err := a.attendanceRepo.CountAbsences(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to count absences: %w", err)
	}

	unpaidLeaves, err := a.requestRepo.ListApprovedUnpaidOverlapping(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list unpaid leave: %w", err)
	}

	total := decimal.NewFromInt(int64(absences))
	for _, lr := range unpaidLeaves {
		total = total.Add(clippedDays(lr.StartDate, lr.EndDate, monthStart, monthEnd))
	}

	return total, nil
}

// clippedDays counts the inclusive calendar days of [start, end] that fall
// inside [monthStart, monthEnd].
func clippedDays(start, end, monthStart, monthEnd time.Time) decimal.Decimal {
	if start.Before(monthStart) {
		start = monthStart
	}
	if end.After(monthEnd) {
		end = monthEnd
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	return decimal.NewFromInt(int64(days))
}
