package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
)

type salaryStructureRepository struct {
	store *Store
}

func (s *Store) SalaryStructureRepository() payroll.SalaryStructureRepository {
	return &salaryStructureRepository{store: s}
}

func (r *salaryStructureRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryStructureItem, error) {
	defer r.store.lock(ctx)()

	items := make([]payroll.SalaryStructureItem, 0)
	for _, item := range r.store.salaryStructures {
		if item.EmployeeID != employeeID {
			continue
		}
		if sc, ok := r.store.salaryComponents[item.ComponentID]; ok {
			item.ComponentName = sc.Name
			item.ComponentType = sc.Type
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ComponentType != items[j].ComponentType {
			return items[i].ComponentType < items[j].ComponentType
		}
		return items[i].ComponentName < items[j].ComponentName
	})
	return items, nil
}

type payrollRunRepository struct {
	store *Store
}

func (s *Store) PayrollRunRepository() payroll.PayrollRunRepository {
	return &payrollRunRepository{store: s}
}

func (r *payrollRunRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.payrollRuns {
		if existing.Month == run.Month && existing.Year == run.Year {
			return payroll.PayrollRun{}, payroll.ErrRunExists
		}
	}

	run.ID = newID()
	now := time.Now()
	run.ProcessedAt = now
	run.CreatedAt = now
	run.UpdatedAt = now
	r.store.payrollRuns[run.ID] = run
	return run, nil
}

func (r *payrollRunRepository) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	defer r.store.lock(ctx)()

	run, ok := r.store.payrollRuns[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (r *payrollRunRepository) GetRunByPeriod(ctx context.Context, month, year int) (payroll.PayrollRun, error) {
	defer r.store.lock(ctx)()

	for _, run := range r.store.payrollRuns {
		if run.Month == month && run.Year == year {
			return run, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (r *payrollRunRepository) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	defer r.store.lock(ctx)()

	runs := make([]payroll.PayrollRun, 0, len(r.store.payrollRuns))
	for _, run := range r.store.payrollRuns {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Year != runs[j].Year {
			return runs[i].Year > runs[j].Year
		}
		return runs[i].Month > runs[j].Month
	})
	return runs, nil
}

func (r *payrollRunRepository) UpdateRunTotal(ctx context.Context, runID string, totalPayout decimal.Decimal) error {
	defer r.store.lock(ctx)()

	run, ok := r.store.payrollRuns[runID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	run.TotalPayout = totalPayout
	run.UpdatedAt = time.Now()
	r.store.payrollRuns[runID] = run
	return nil
}

func (r *payrollRunRepository) FinalizeRun(ctx context.Context, runID, finalizedBy string) error {
	defer r.store.lock(ctx)()

	run, ok := r.store.payrollRuns[runID]
	if !ok || run.Status != payroll.RunStatusDraft {
		return payroll.ErrAlreadyFinalized
	}

	now := time.Now()
	run.Status = payroll.RunStatusFinalized
	run.FinalizedBy = &finalizedBy
	run.FinalizedAt = &now
	run.UpdatedAt = now
	r.store.payrollRuns[runID] = run
	return nil
}

func (r *payrollRunRepository) DeleteRun(ctx context.Context, runID string) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.payrollRuns[runID]; !ok {
		return payroll.ErrRunNotFound
	}

	for id, ep := range r.store.employeePayrolls {
		if ep.PayrollRunID != runID {
			continue
		}
		for detailID, d := range r.store.payrollDetails {
			if d.EmployeePayrollID == id {
				delete(r.store.payrollDetails, detailID)
			}
		}
		delete(r.store.employeePayrolls, id)
	}
	delete(r.store.payrollRuns, runID)
	return nil
}

func (r *payrollRunRepository) CreateEmployeePayroll(ctx context.Context, row payroll.EmployeePayroll) (payroll.EmployeePayroll, error) {
	defer r.store.lock(ctx)()

	row.ID = newID()
	row.CreatedAt = time.Now()
	r.store.employeePayrolls[row.ID] = row
	return row, nil
}

func (r *payrollRunRepository) UpdateEmployeePayrollTotals(ctx context.Context, id string, earnings, deductions, net decimal.Decimal) error {
	defer r.store.lock(ctx)()

	row, ok := r.store.employeePayrolls[id]
	if !ok {
		return payroll.ErrRunNotFound
	}
	row.TotalEarnings = earnings
	row.TotalDeductions = deductions
	row.NetSalary = net
	r.store.employeePayrolls[id] = row
	return nil
}

func (r *payrollRunRepository) MarkEmployeePayrollsPaid(ctx context.Context, runID string) error {
	defer r.store.lock(ctx)()

	for id, row := range r.store.employeePayrolls {
		if row.PayrollRunID == runID {
			row.PaymentStatus = payroll.PaymentStatusPaid
			r.store.employeePayrolls[id] = row
		}
	}
	return nil
}

func (r *payrollRunRepository) ListEmployeePayrolls(ctx context.Context, runID string) ([]payroll.EmployeePayroll, error) {
	defer r.store.lock(ctx)()

	payrolls := make([]payroll.EmployeePayroll, 0)
	for _, row := range r.store.employeePayrolls {
		if row.PayrollRunID != runID {
			continue
		}
		if emp, ok := r.store.employees[row.EmployeeID]; ok {
			name := emp.FullName
			row.EmployeeName = &name
		}
		payrolls = append(payrolls, row)
	}
	sort.Slice(payrolls, func(i, j int) bool {
		var ni, nj string
		if payrolls[i].EmployeeName != nil {
			ni = *payrolls[i].EmployeeName
		}
		if payrolls[j].EmployeeName != nil {
			nj = *payrolls[j].EmployeeName
		}
		return ni < nj
	})
	return payrolls, nil
}

func (r *payrollRunRepository) CreateDetail(ctx context.Context, detail payroll.PayrollDetail) (payroll.PayrollDetail, error) {
	defer r.store.lock(ctx)()

	detail.ID = newID()
	r.store.payrollDetails[detail.ID] = detail
	return detail, nil
}

func (r *payrollRunRepository) ListDetails(ctx context.Context, employeePayrollID string) ([]payroll.PayrollDetail, error) {
	defer r.store.lock(ctx)()

	details := make([]payroll.PayrollDetail, 0)
	for _, d := range r.store.payrollDetails {
		if d.EmployeePayrollID != employeePayrollID {
			continue
		}
		if sc, ok := r.store.salaryComponents[d.ComponentID]; ok {
			d.ComponentName = sc.Name
			d.ComponentType = sc.Type
		}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool {
		if details[i].ComponentType != details[j].ComponentType {
			return details[i].ComponentType < details[j].ComponentType
		}
		return details[i].ComponentName < details[j].ComponentName
	})
	return details, nil
}
