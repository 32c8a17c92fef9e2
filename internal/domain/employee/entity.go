package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee - directory entry supplied by the surrounding system. Read-only
// input to leave and payroll computations.
type Employee struct {
	ID               string
	FullName         string
	EmploymentStatus string // 'active', 'probation', 'resigned', ...
	Salary           decimal.Decimal
	HireDate         time.Time
}
