package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

func (r *payrollRunRepositoryImpl) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			id, month, year, status, processed_at, total_payout,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, NOW(), $4,
			NOW(), NOW()
		) RETURNING id, processed_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		run.Month, run.Year, run.Status, run.TotalPayout,
	).Scan(&run.ID, &run.ProcessedAt, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollRun{}, payroll.ErrRunExists
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, status, processed_at, total_payout,
			   finalized_by, finalized_at, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1 AND deleted_at IS NULL
	`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Month, &run.Year, &run.Status, &run.ProcessedAt, &run.TotalPayout,
		&run.FinalizedBy, &run.FinalizedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *payrollRunRepositoryImpl) GetRunByPeriod(ctx context.Context, month, year int) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, status, processed_at, total_payout,
			   finalized_by, finalized_at, created_at, updated_at
		FROM payroll_runs
		WHERE month = $1 AND year = $2 AND deleted_at IS NULL
	`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, month, year).Scan(
		&run.ID, &run.Month, &run.Year, &run.Status, &run.ProcessedAt, &run.TotalPayout,
		&run.FinalizedBy, &run.FinalizedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *payrollRunRepositoryImpl) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, status, processed_at, total_payout,
			   finalized_by, finalized_at, created_at, updated_at
		FROM payroll_runs
		WHERE deleted_at IS NULL
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]payroll.PayrollRun, 0)
	for rows.Next() {
		var run payroll.PayrollRun
		if err := rows.Scan(
			&run.ID, &run.Month, &run.Year, &run.Status, &run.ProcessedAt, &run.TotalPayout,
			&run.FinalizedBy, &run.FinalizedAt, &run.CreatedAt, &run.UpdatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRunRepositoryImpl) UpdateRunTotal(ctx context.Context, runID string, totalPayout decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET total_payout = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, totalPayout, runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// FinalizeRun guards on status so a run can only be finalized once even
// under concurrent requests.
func (r *payrollRunRepositoryImpl) FinalizeRun(ctx context.Context, runID, finalizedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = 'finalized',
			finalized_by = $1,
			finalized_at = NOW(),
			updated_at = NOW()
		WHERE id = $2
		AND status = 'draft'
		AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, finalizedBy, runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAlreadyFinalized
	}

	return nil
}

func (r *payrollRunRepositoryImpl) DeleteRun(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		DELETE FROM payroll_details
		WHERE employee_payroll_id IN (
			SELECT id FROM employee_payrolls WHERE payroll_run_id = $1
		)
	`, runID); err != nil {
		return fmt.Errorf("failed to delete payroll details: %w", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM employee_payrolls WHERE payroll_run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete employee payrolls: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func (r *payrollRunRepositoryImpl) CreateEmployeePayroll(ctx context.Context, row payroll.EmployeePayroll) (payroll.EmployeePayroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_payrolls (
			id, payroll_run_id, employee_id,
			days_worked, loss_of_pay_days,
			basic_salary, total_earnings, total_deductions, net_salary,
			payment_status, created_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4,
			$5, $6, $7, $8,
			$9, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		row.PayrollRunID, row.EmployeeID,
		row.DaysWorked, row.LossOfPayDays,
		row.BasicSalary, row.TotalEarnings, row.TotalDeductions, row.NetSalary,
		row.PaymentStatus,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return payroll.EmployeePayroll{}, fmt.Errorf("failed to create employee payroll: %w", err)
	}

	return row, nil
}

func (r *payrollRunRepositoryImpl) UpdateEmployeePayrollTotals(ctx context.Context, id string, earnings, deductions, net decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_payrolls
		SET total_earnings = $1, total_deductions = $2, net_salary = $3
		WHERE id = $4
	`

	_, err := q.Exec(ctx, query, earnings, deductions, net, id)

	return err
}

func (r *payrollRunRepositoryImpl) MarkEmployeePayrollsPaid(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_payrolls
		SET payment_status = 'paid'
		WHERE payroll_run_id = $1
	`

	_, err := q.Exec(ctx, query, runID)

	return err
}

func (r *payrollRunRepositoryImpl) ListEmployeePayrolls(ctx context.Context, runID string) ([]payroll.EmployeePayroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ep.id, ep.payroll_run_id, ep.employee_id,
			   ep.days_worked, ep.loss_of_pay_days,
			   ep.basic_salary, ep.total_earnings, ep.total_deductions, ep.net_salary,
			   ep.payment_status, ep.created_at,
			   e.full_name AS employee_name
		FROM employee_payrolls ep
		JOIN employees e ON ep.employee_id = e.id
		WHERE ep.payroll_run_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payrolls := make([]payroll.EmployeePayroll, 0)
	for rows.Next() {
		var row payroll.EmployeePayroll
		var employeeName string
		if err := rows.Scan(
			&row.ID, &row.PayrollRunID, &row.EmployeeID,
			&row.DaysWorked, &row.LossOfPayDays,
			&row.BasicSalary, &row.TotalEarnings, &row.TotalDeductions, &row.NetSalary,
			&row.PaymentStatus, &row.CreatedAt,
			&employeeName,
		); err != nil {
			return nil, err
		}
		row.EmployeeName = &employeeName
		payrolls = append(payrolls, row)
	}

	return payrolls, rows.Err()
}

func (r *payrollRunRepositoryImpl) CreateDetail(ctx context.Context, detail payroll.PayrollDetail) (payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_details (
			id, employee_payroll_id, component_id, amount
		) VALUES (
			uuidv7(), $1, $2, $3
		) RETURNING id
	`

	err := q.QueryRow(ctx, query,
		detail.EmployeePayrollID, detail.ComponentID, detail.Amount,
	).Scan(&detail.ID)
	if err != nil {
		return payroll.PayrollDetail{}, fmt.Errorf("failed to create payroll detail: %w", err)
	}

	return detail, nil
}

func (r *payrollRunRepositoryImpl) ListDetails(ctx context.Context, employeePayrollID string) ([]payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pd.id, pd.employee_payroll_id, pd.component_id, pd.amount,
			   sc.name AS component_name, sc.component_type
		FROM payroll_details pd
		JOIN salary_components sc ON pd.component_id = sc.id
		WHERE pd.employee_payroll_id = $1
		ORDER BY sc.component_type, sc.name
	`

	rows, err := q.Query(ctx, query, employeePayrollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]payroll.PayrollDetail, 0)
	for rows.Next() {
		var d payroll.PayrollDetail
		if err := rows.Scan(
			&d.ID, &d.EmployeePayrollID, &d.ComponentID, &d.Amount,
			&d.ComponentName, &d.ComponentType,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
