package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   total_days, used_days, remaining_days, carried_forward_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.TotalDays, &b.UsedDays, &b.RemainingDays, &b.CarriedForwardDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return b, nil
}

func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.total_days, lb.used_days, lb.remaining_days, lb.carried_forward_days,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		var leaveTypeName string
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.TotalDays, &b.UsedDays, &b.RemainingDays, &b.CarriedForwardDays,
			&b.CreatedAt, &b.UpdatedAt,
			&leaveTypeName,
		); err != nil {
			return nil, err
		}
		b.LeaveTypeName = &leaveTypeName
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

func (r *leaveBalanceRepositoryImpl) CreateIfAbsent(ctx context.Context, balance leave.LeaveBalance) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			total_days, used_days, remaining_days, carried_forward_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.TotalDays, balance.UsedDays, balance.RemainingDays, balance.CarriedForwardDays,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// Consume moves days from remaining to used in one guarded statement, so the
// check and the mutation cannot be separated by a concurrent approval.
func (r *leaveBalanceRepositoryImpl) Consume(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1,
			remaining_days = remaining_days - $1,
			updated_at = NOW()
		WHERE id = $2
		AND remaining_days >= $1
	`

	tag, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

func (r *leaveBalanceRepositoryImpl) Adjust(ctx context.Context, balanceID string, deltaTotal, deltaCarried decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET total_days = total_days + $1,
			carried_forward_days = carried_forward_days + $2,
			remaining_days = remaining_days + $1 + $2,
			updated_at = NOW()
		WHERE id = $3
		AND remaining_days + $1 + $2 >= 0
	`

	tag, err := q.Exec(ctx, query, deltaTotal, deltaCarried, balanceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrNegativeAdjustment
	}

	return nil
}
