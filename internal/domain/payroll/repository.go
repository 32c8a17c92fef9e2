package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// SalaryStructureRepository reads salary structure reference data.
type SalaryStructureRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryStructureItem, error)
}

// PayrollRunRepository persists runs and their rows. Runs own their
// employee payrolls, which own their details; deletes cascade.
type PayrollRunRepository interface {
	// CreateRun inserts a draft run. Returns ErrRunExists when another
	// non-deleted run holds the (month, year) slot; the unique constraint
	// is the mutual-exclusion point for concurrent processing.
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)

	GetRunByID(ctx context.Context, id string) (PayrollRun, error)
	GetRunByPeriod(ctx context.Context, month, year int) (PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)

	UpdateRunTotal(ctx context.Context, runID string, totalPayout decimal.Decimal) error

	// FinalizeRun flips a draft run to finalized and records the actor.
	FinalizeRun(ctx context.Context, runID, finalizedBy string) error

	// DeleteRun removes the run and cascades to employee payrolls and
	// details.
	DeleteRun(ctx context.Context, runID string) error

	CreateEmployeePayroll(ctx context.Context, row EmployeePayroll) (EmployeePayroll, error)
	UpdateEmployeePayrollTotals(ctx context.Context, id string, earnings, deductions, net decimal.Decimal) error
	MarkEmployeePayrollsPaid(ctx context.Context, runID string) error
	ListEmployeePayrolls(ctx context.Context, runID string) ([]EmployeePayroll, error)

	CreateDetail(ctx context.Context, detail PayrollDetail) (PayrollDetail, error)
	ListDetails(ctx context.Context, employeePayrollID string) ([]PayrollDetail, error)
}
