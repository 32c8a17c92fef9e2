package postgresql

import (
	"context"

	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type salaryStructureRepositoryImpl struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) payroll.SalaryStructureRepository {
	return &salaryStructureRepositoryImpl{db: db}
}

func (r *salaryStructureRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryStructureItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.id, ss.employee_id, ss.component_id, ss.amount,
			   sc.name AS component_name, sc.component_type
		FROM salary_structures ss
		JOIN salary_components sc ON ss.component_id = sc.id
		WHERE ss.employee_id = $1
		ORDER BY sc.component_type, sc.name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]payroll.SalaryStructureItem, 0)
	for rows.Next() {
		var item payroll.SalaryStructureItem
		if err := rows.Scan(
			&item.ID, &item.EmployeeID, &item.ComponentID, &item.Amount,
			&item.ComponentName, &item.ComponentType,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
