package postgresql

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, employment_status, salary, hire_date
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.EmploymentStatus, &emp.Salary, &emp.HireDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.ListByStatuses(ctx, []string{"active"})
}

func (r *employeeRepositoryImpl) ListByStatuses(ctx context.Context, statuses []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, employment_status, salary, hire_date
		FROM employees
		WHERE LOWER(employment_status) = ANY($1)
		ORDER BY full_name
	`

	lowered := make([]string, 0, len(statuses))
	for _, s := range statuses {
		lowered = append(lowered, strings.ToLower(s))
	}

	rows, err := q.Query(ctx, query, lowered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.EmploymentStatus, &emp.Salary, &emp.HireDate,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}
