package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// CountAbsences counts records with status absent for the employee in
	// [from, to] inclusive.
	CountAbsences(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
