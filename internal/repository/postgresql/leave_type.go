package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, default_days_per_year, is_paid, requires_approval,
			   max_consecutive_days, allow_carry_forward, carry_forward_cap,
			   is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.DefaultDaysPerYear, &lt.IsPaid, &lt.RequiresApproval,
		&lt.MaxConsecutiveDays, &lt.AllowCarryForward, &lt.CarryForwardCap,
		&lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, default_days_per_year, is_paid, requires_approval,
			   max_consecutive_days, allow_carry_forward, carry_forward_cap,
			   is_active, created_at, updated_at
		FROM leave_types
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.DefaultDaysPerYear, &lt.IsPaid, &lt.RequiresApproval,
			&lt.MaxConsecutiveDays, &lt.AllowCarryForward, &lt.CarryForwardCap,
			&lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}
