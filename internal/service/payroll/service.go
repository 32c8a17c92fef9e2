package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/pkg/calendar"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

// payrollStatuses selects which employees enter a run.
var payrollStatuses = []string{"active", "probation"}

// RunService orchestrates monthly payroll runs through their
// Draft -> Finalized lifecycle.
type RunService struct {
	runRepo       payroll.PayrollRunRepository
	structureRepo payroll.SalaryStructureRepository
	employeeRepo  employee.Repository
	aggregator    *Aggregator
	tx            database.TxRunner
}

func NewRunService(
	runRepo payroll.PayrollRunRepository,
	structureRepo payroll.SalaryStructureRepository,
	employeeRepo employee.Repository,
	aggregator *Aggregator,
	tx database.TxRunner,
) *RunService {
	return &RunService{
		runRepo:       runRepo,
		structureRepo: structureRepo,
		employeeRepo:  employeeRepo,
		aggregator:    aggregator,
		tx:            tx,
	}
}

// Process computes the run for (month, year). An existing draft for the
// period is dropped and rebuilt, so reprocessing a draft is idempotent; a
// finalized period refuses with ErrAlreadyFinalized. The whole run is built
// inside one transaction: any per-employee failure rolls everything back,
// and the (month, year) uniqueness on non-deleted runs makes a concurrent
// Process for the same period fail cleanly with ErrRunExists.
func (s *RunService) Process(ctx context.Context, req payroll.ProcessPayrollRequest) (payroll.PayrollRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	existing, err := s.runRepo.GetRunByPeriod(ctx, req.Month, req.Year)
	if err != nil && !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.PayrollRunResponse{}, err
	}
	if err == nil && existing.Status == payroll.RunStatusFinalized {
		return payroll.PayrollRunResponse{}, payroll.ErrAlreadyFinalized
	}

	var runID string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if existing.ID != "" {
			if err := s.runRepo.DeleteRun(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to replace draft run: %w", err)
			}
		}

		run, err := s.runRepo.CreateRun(ctx, payroll.PayrollRun{
			Month:       req.Month,
			Year:        req.Year,
			Status:      payroll.RunStatusDraft,
			TotalPayout: decimal.Zero,
		})
		if err != nil {
			return err
		}
		runID = run.ID

		totalPayout, err := s.buildRun(ctx, run)
		if err != nil {
			return err
		}

		return s.runRepo.UpdateRunTotal(ctx, run.ID, totalPayout.Round(2))
	})
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	slog.Info("processed payroll run", "month", req.Month, "year", req.Year, "run_id", runID)

	return s.GetRun(ctx, runID)
}

// buildRun creates one EmployeePayroll row with its details per eligible
// employee and returns the summed net payout. Employees without a salary
// structure are skipped: payroll is not configured for them yet.
func (s *RunService) buildRun(ctx context.Context, run payroll.PayrollRun) (decimal.Decimal, error) {
	employees, err := s.employeeRepo.ListByStatuses(ctx, payrollStatuses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list employees: %w", err)
	}

	month := time.Month(run.Month)
	monthStart, monthEnd := calendar.MonthBounds(run.Year, month)
	daysInMonth := decimal.NewFromInt(int64(calendar.DaysInMonth(run.Year, month)))

	totalPayout := decimal.Zero
	for _, emp := range employees {
		items, err := s.structureRepo.ListByEmployee(ctx, emp.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load salary structure for employee %s: %w", emp.ID, err)
		}
		if len(items) == 0 {
			continue
		}

		lossOfPayDays, err := s.aggregator.LossOfPayDays(ctx, emp.ID, monthStart, monthEnd)
		if err != nil {
			return decimal.Zero, err
		}

		workedDays := daysInMonth.Sub(lossOfPayDays)
		if workedDays.IsNegative() {
			workedDays = decimal.Zero
		}

		row, err := s.runRepo.CreateEmployeePayroll(ctx, payroll.EmployeePayroll{
			PayrollRunID:    run.ID,
			EmployeeID:      emp.ID,
			DaysWorked:      int(workedDays.IntPart()),
			LossOfPayDays:   int(lossOfPayDays.IntPart()),
			BasicSalary:     emp.Salary,
			TotalEarnings:   decimal.Zero,
			TotalDeductions: decimal.Zero,
			NetSalary:       decimal.Zero,
			PaymentStatus:   payroll.PaymentStatusPending,
		})
		if err != nil {
			return decimal.Zero, err
		}

		earnings := decimal.Zero
		deductions := decimal.Zero
		for _, item := range items {
			amount := item.Amount.Mul(workedDays).Div(daysInMonth).Round(2)

			if _, err := s.runRepo.CreateDetail(ctx, payroll.PayrollDetail{
				EmployeePayrollID: row.ID,
				ComponentID:       item.ComponentID,
				Amount:            amount,
			}); err != nil {
				return decimal.Zero, err
			}

			if item.ComponentType == payroll.ComponentTypeEarning {
				earnings = earnings.Add(amount)
			} else {
				deductions = deductions.Add(amount)
			}
		}

		net := earnings.Sub(deductions).Round(2)
		if err := s.runRepo.UpdateEmployeePayrollTotals(ctx, row.ID, earnings, deductions, net); err != nil {
			return decimal.Zero, err
		}

		totalPayout = totalPayout.Add(net)
	}

	return totalPayout, nil
}

// Finalize flips a draft run to finalized and marks its employee payrolls
// paid. Irreversible.
func (s *RunService) Finalize(ctx context.Context, runID, finalizedBy string) (payroll.PayrollRun, error) {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	if run.Status != payroll.RunStatusDraft {
		return payroll.PayrollRun{}, payroll.ErrAlreadyFinalized
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.runRepo.FinalizeRun(ctx, runID, finalizedBy); err != nil {
			return err
		}
		return s.runRepo.MarkEmployeePayrollsPaid(ctx, runID)
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return s.runRepo.GetRunByID(ctx, runID)
}

// DeleteRun removes a draft run with all its rows.
func (s *RunService) DeleteRun(ctx context.Context, runID string) error {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status == payroll.RunStatusFinalized {
		return payroll.ErrCannotDeleteFinalized
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.runRepo.DeleteRun(ctx, runID)
	})
}

// GetRun returns a run with its employee rows and their details.
func (s *RunService) GetRun(ctx context.Context, runID string) (payroll.PayrollRunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	rows, err := s.runRepo.ListEmployeePayrolls(ctx, runID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	response := payroll.PayrollRunResponse{Run: run, Employees: make([]payroll.EmployeePayrollResponse, 0, len(rows))}
	for _, row := range rows {
		details, err := s.runRepo.ListDetails(ctx, row.ID)
		if err != nil {
			return payroll.PayrollRunResponse{}, err
		}
		response.Employees = append(response.Employees, payroll.EmployeePayrollResponse{
			EmployeePayroll: row,
			Details:         details,
		})
	}

	return response, nil
}

func (s *RunService) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	return s.runRepo.ListRuns(ctx)
}
