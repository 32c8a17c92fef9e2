package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

// SalaryComponent - master earning/deduction component. Reference data.
type SalaryComponent struct {
	ID       string
	Name     string
	Type     ComponentType
	IsActive bool
}

// SalaryStructureItem - one component assigned to an employee with a fixed
// monthly amount. Read-only input to the run engine.
type SalaryStructureItem struct {
	ID          string
	EmployeeID  string
	ComponentID string
	Amount      decimal.Decimal

	// Joined fields
	ComponentName string
	ComponentType ComponentType
}

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft     RunStatus = "draft"
	RunStatusFinalized RunStatus = "finalized"
)

// PayrollRun - one monthly settlement run. (Month, Year) is unique among
// non-deleted runs; a draft may be deleted and the period reprocessed.
type PayrollRun struct {
	ID          string
	Month       int
	Year        int
	Status      RunStatus
	ProcessedAt time.Time
	TotalPayout decimal.Decimal

	FinalizedBy *string
	FinalizedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// EmployeePayroll - one employee's settlement inside a run. All monetary
// fields carry two fractional digits.
type EmployeePayroll struct {
	ID           string
	PayrollRunID string
	EmployeeID   string

	DaysWorked    int
	LossOfPayDays int

	BasicSalary     decimal.Decimal
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	PaymentStatus PaymentStatus

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// PayrollDetail - one applied salary-structure component.
type PayrollDetail struct {
	ID                string
	EmployeePayrollID string
	ComponentID       string
	Amount            decimal.Decimal

	// Joined fields
	ComponentName string
	ComponentType ComponentType
}
