package postgresql

import (
	"context"
	"time"

	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) CountAbsences(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE employee_id = $1
		AND status = 'absent'
		AND date BETWEEN $2 AND $3
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count)

	return count, err
}
