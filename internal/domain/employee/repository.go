package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns employees with employment status active.
	ListActive(ctx context.Context) ([]Employee, error)

	// ListByStatuses matches employment status case-insensitively.
	ListByStatuses(ctx context.Context, statuses []string) ([]Employee, error)
}
