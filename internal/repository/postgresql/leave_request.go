package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

// uuidParam turns an optional request id into a nullable uuid argument.
// The id columns are uuid-typed, so an empty string must travel as NULL:
// pgx would otherwise route "" through the uuid codec, which rejects it
// before the query runs.
func uuidParam(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, total_days,
			reason, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays,
		request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approver_id, lr.approved_at, lr.approver_comment,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var leaveTypeName, employeeName string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.TotalDays,
		&req.Reason, &req.Status,
		&req.ApproverID, &req.ApprovedAt, &req.ApproverComment,
		&req.CreatedAt, &req.UpdatedAt,
		&leaveTypeName, &employeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.LeaveTypeName = &leaveTypeName
	req.EmployeeName = &employeeName

	return req, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, input leave.UpdateLeaveRequestInput) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if input.LeaveTypeID != nil {
		updates = append(updates, fmt.Sprintf("leave_type_id = $%d", argIdx))
		args = append(args, *input.LeaveTypeID)
		argIdx++
	}
	if input.StartDate != nil {
		updates = append(updates, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, *input.StartDate)
		argIdx++
	}
	if input.EndDate != nil {
		updates = append(updates, fmt.Sprintf("end_date = $%d", argIdx))
		args = append(args, *input.EndDate)
		argIdx++
	}
	if input.TotalDays != nil {
		updates = append(updates, fmt.Sprintf("total_days = $%d", argIdx))
		args = append(args, *input.TotalDays)
		argIdx++
	}
	if input.Reason != nil {
		updates = append(updates, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *input.Reason)
		argIdx++
	}
	if input.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *input.Status)
		argIdx++
	}
	if input.ApproverID != nil {
		updates = append(updates, fmt.Sprintf("approver_id = $%d", argIdx))
		args = append(args, *input.ApproverID)
		argIdx++
	}
	if input.ApprovedAt != nil {
		updates = append(updates, fmt.Sprintf("approved_at = $%d", argIdx))
		args = append(args, *input.ApprovedAt)
		argIdx++
	}
	if input.ApproverComment != nil {
		updates = append(updates, fmt.Sprintf("approver_comment = $%d", argIdx))
		args = append(args, *input.ApproverComment)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave request update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, input.ID)

	sql := "UPDATE leave_requests SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request with id %s: %w", input.ID, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approver_id, lr.approved_at, lr.approver_comment,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE %s
		ORDER BY lr.created_at DESC
	`, strings.Join(whereClauses, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		var leaveTypeName, employeeName string
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.TotalDays,
			&req.Reason, &req.Status,
			&req.ApproverID, &req.ApprovedAt, &req.ApproverComment,
			&req.CreatedAt, &req.UpdatedAt,
			&leaveTypeName, &employeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		req.LeaveTypeName = &leaveTypeName
		req.EmployeeName = &employeeName
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			AND status IN ('pending', 'approved')
			AND ($2::uuid IS NULL OR id != $2::uuid)
			AND start_date <= $4
			AND end_date >= $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, uuidParam(excludeID), start, end).Scan(&exists)

	return exists, err
}

func (r *leaveRequestRepositoryImpl) SumPendingDays(ctx context.Context, employeeID, leaveTypeID string, year int, excludeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		AND leave_type_id = $2
		AND status = 'pending'
		AND ($3::uuid IS NULL OR id != $3::uuid)
		AND EXTRACT(YEAR FROM start_date) = $4
	`

	var sum decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, uuidParam(excludeID), year).Scan(&sum)

	return sum, err
}

func (r *leaveRequestRepositoryImpl) ListApprovedUnpaidOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approver_id, lr.approved_at, lr.approver_comment,
			   lr.created_at, lr.updated_at
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		AND lr.status = 'approved'
		AND lt.is_paid = FALSE
		AND lr.start_date <= $3
		AND lr.end_date >= $2
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.TotalDays,
			&req.Reason, &req.Status,
			&req.ApproverID, &req.ApprovedAt, &req.ApproverComment,
			&req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
