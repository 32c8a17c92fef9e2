package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
)

// BalanceService owns the leave ledger: per-employee, per-type, per-year
// balance rows and their pending-request reservations.
type BalanceService struct {
	balanceRepo  leave.LeaveBalanceRepository
	requestRepo  leave.LeaveRequestRepository
	typeRepo     leave.LeaveTypeRepository
	employeeRepo employee.Repository
}

func NewBalanceService(
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	typeRepo leave.LeaveTypeRepository,
	employeeRepo employee.Repository,
) *BalanceService {
	return &BalanceService{
		balanceRepo:  balanceRepo,
		requestRepo:  requestRepo,
		typeRepo:     typeRepo,
		employeeRepo: employeeRepo,
	}
}

// GetBalance returns one balance row with its pending-days summary filled in.
func (s *BalanceService) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	pending, err := s.requestRepo.SumPendingDays(ctx, employeeID, leaveTypeID, year, "")
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to sum pending days: %w", err)
	}
	balance.PendingDays = pending

	return balance, nil
}

// ListBalances returns an employee's balances for a year, each with its
// pending-days summary.
func (s *BalanceService) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	for i := range balances {
		pending, err := s.requestRepo.SumPendingDays(ctx, employeeID, balances[i].LeaveTypeID, year, "")
		if err != nil {
			return nil, fmt.Errorf("failed to sum pending days: %w", err)
		}
		balances[i].PendingDays = pending
	}

	return balances, nil
}

// Available reports the days still open for new requests: stored remaining
// minus the reservation held by pending requests. Advisory only; the
// authoritative check is the guarded consume at approval time.
func (s *BalanceService) Available(ctx context.Context, employeeID, leaveTypeID string, year int) (decimal.Decimal, error) {
	balance, err := s.GetBalance(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.RemainingDays.Sub(balance.PendingDays), nil
}

// InitializeYear creates the year's balance row for every active employee and
// every active leave type that lacks one. Existing rows are left untouched, so
// the operation is safe to repeat. Returns the number of rows created.
func (s *BalanceService) InitializeYear(ctx context.Context, year int) (int, error) {
	req := leave.InitializeYearRequest{Year: year}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	types, err := s.typeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active leave types: %w", err)
	}

	created := 0
	for _, emp := range employees {
		for _, lt := range types {
			ok, err := s.balanceRepo.CreateIfAbsent(ctx, leave.LeaveBalance{
				EmployeeID:         emp.ID,
				LeaveTypeID:        lt.ID,
				Year:               year,
				TotalDays:          lt.DefaultDaysPerYear,
				UsedDays:           decimal.Zero,
				RemainingDays:      lt.DefaultDaysPerYear,
				CarriedForwardDays: decimal.Zero,
			})
			if err != nil {
				return created, fmt.Errorf("failed to initialize balance for employee %s: %w", emp.ID, err)
			}
			if ok {
				created++
			}
		}
	}

	slog.Info("initialized leave balances", "year", year, "created", created)

	return created, nil
}

// Adjust applies an administrative correction to a balance row. The
// repository refuses deltas that would drive remaining days negative.
func (s *BalanceService) Adjust(ctx context.Context, req leave.AdjustBalanceRequest) (leave.LeaveBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalance{}, err
	}

	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	if err := s.balanceRepo.Adjust(ctx, balance.ID, req.DeltaTotalDays, req.DeltaCarriedDays); err != nil {
		return leave.LeaveBalance{}, err
	}

	return s.GetBalance(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
}
