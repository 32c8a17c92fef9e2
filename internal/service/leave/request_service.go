package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/pkg/calendar"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
	"github.com/quantohr/payroll-backend-go/internal/pkg/validator"
)

// RequestService drives the leave request state machine:
// Pending -> Approved or Pending -> Rejected, both terminal.
type RequestService struct {
	requestRepo  leave.LeaveRequestRepository
	balanceRepo  leave.LeaveBalanceRepository
	typeRepo     leave.LeaveTypeRepository
	holidayRepo  leave.HolidayRepository
	employeeRepo employee.Repository
	tx           database.TxRunner
}

func NewRequestService(
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	typeRepo leave.LeaveTypeRepository,
	holidayRepo leave.HolidayRepository,
	employeeRepo employee.Repository,
	tx database.TxRunner,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		typeRepo:     typeRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
	}
}

func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return leave.ErrInvalidDateRange
	}
	if start.Year() != end.Year() {
		return leave.ErrCrossYearRange
	}
	return nil
}

// workingDays computes the request's chargeable days against the active
// holiday calendar.
func (s *RequestService) workingDays(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	holidays, err := s.holidayRepo.ListActiveDatesInRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load holidays: %w", err)
	}

	breakdown, err := calendar.WorkingDaysBetween(start, end, holidays)
	if err != nil {
		return decimal.Zero, leave.ErrInvalidDateRange
	}

	return decimal.NewFromInt(int64(breakdown.WorkingDays)), nil
}

// Apply validates and persists a new leave request in Pending state. Pending
// requests of the same employee and type count as reserved days, so the
// sufficiency check here subtracts them from the stored remaining balance.
func (s *RequestService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	if err := validateRange(start, end); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}
	if _, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	overlapping, err := s.requestRepo.HasOverlapping(ctx, req.EmployeeID, start, end, "")
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.LeaveRequest{}, leave.ErrOverlappingRequest
	}

	totalDays, err := s.workingDays(ctx, start, end)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if totalDays.LessThanOrEqual(decimal.Zero) {
		return leave.LeaveRequest{}, leave.ErrZeroWorkingDays
	}

	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, start.Year())
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveRequest{}, leave.ErrNoBalanceRecord
		}
		return leave.LeaveRequest{}, err
	}

	pending, err := s.requestRepo.SumPendingDays(ctx, req.EmployeeID, req.LeaveTypeID, start.Year(), "")
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to sum pending days: %w", err)
	}
	if balance.RemainingDays.Sub(pending).LessThan(totalDays) {
		return leave.LeaveRequest{}, leave.ErrInsufficientBalance
	}

	return s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
	})
}

// Update rewrites a Pending request's dates, type or reason and recomputes
// its day count. Overlap and balance sufficiency are deliberately not
// re-checked here; they were enforced at application time and are enforced
// again by the guarded consume at approval.
func (s *RequestService) Update(ctx context.Context, requestID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	existing, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if existing.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	start := existing.StartDate
	end := existing.EndDate

	if req.StartDate != nil {
		parsed, ok := validator.IsValidDate(*req.StartDate)
		if !ok {
			return leave.LeaveRequest{}, validator.ValidationErrors{{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"}}
		}
		start = parsed
	}
	if req.EndDate != nil {
		parsed, ok := validator.IsValidDate(*req.EndDate)
		if !ok {
			return leave.LeaveRequest{}, validator.ValidationErrors{{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"}}
		}
		end = parsed
	}

	if err := validateRange(start, end); err != nil {
		return leave.LeaveRequest{}, err
	}

	if req.LeaveTypeID != nil {
		if _, err := s.typeRepo.GetByID(ctx, *req.LeaveTypeID); err != nil {
			return leave.LeaveRequest{}, err
		}
	}

	totalDays, err := s.workingDays(ctx, start, end)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if totalDays.LessThanOrEqual(decimal.Zero) {
		return leave.LeaveRequest{}, leave.ErrZeroWorkingDays
	}

	input := leave.UpdateLeaveRequestInput{
		ID:          requestID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   &start,
		EndDate:     &end,
		TotalDays:   &totalDays,
		Reason:      req.Reason,
	}
	if err := s.requestRepo.Update(ctx, input); err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

// Approve consumes the request's days from the year's balance and flips the
// status in one transaction. The consume is a guarded update; when it loses a
// race it is retried once against a fresh balance read before surfacing
// ErrInsufficientBalance.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID, comment string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	year := request.StartDate.Year()
	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveRequest{}, leave.ErrNoBalanceRecord
		}
		return leave.LeaveRequest{}, err
	}
	if balance.RemainingDays.LessThan(request.TotalDays) {
		return leave.LeaveRequest{}, leave.ErrInsufficientBalance
	}

	attempt := func() error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.balanceRepo.Consume(ctx, balance.ID, request.TotalDays); err != nil {
				return err
			}

			now := time.Now()
			status := leave.LeaveRequestStatusApproved
			return s.requestRepo.Update(ctx, leave.UpdateLeaveRequestInput{
				ID:              requestID,
				Status:          &status,
				ApproverID:      &approverID,
				ApprovedAt:      &now,
				ApproverComment: &comment,
			})
		})
	}

	if err := attempt(); err != nil {
		if !errors.Is(err, leave.ErrInsufficientBalance) {
			return leave.LeaveRequest{}, err
		}

		// Lost a race with a concurrent approval. Re-read and try once more.
		balance, err = s.balanceRepo.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, year)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if balance.RemainingDays.LessThan(request.TotalDays) {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
		if err := attempt(); err != nil {
			return leave.LeaveRequest{}, err
		}
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

// Reject closes a Pending request without touching the balance.
func (s *RequestService) Reject(ctx context.Context, requestID, approverID, comment string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	now := time.Now()
	status := leave.LeaveRequestStatusRejected
	err = s.requestRepo.Update(ctx, leave.UpdateLeaveRequestInput{
		ID:              requestID,
		Status:          &status,
		ApproverID:      &approverID,
		ApprovedAt:      &now,
		ApproverComment: &comment,
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

// Delete removes a request that never consumed balance. Approved requests
// hold consumed days and need a managerial cancellation path instead.
func (s *RequestService) Delete(ctx context.Context, requestID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status == leave.LeaveRequestStatusApproved {
		return leave.ErrAlreadyProcessed
	}

	return s.requestRepo.Delete(ctx, requestID)
}

func (s *RequestService) Get(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *RequestService) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return s.requestRepo.List(ctx, filter)
}
