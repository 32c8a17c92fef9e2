package payroll

import (
	"github.com/quantohr/payroll-backend-go/internal/pkg/validator"
)

type ProcessPayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r ProcessPayrollRequest) Validate() error {
	if !validator.IsValidPeriod(r.Month, r.Year) {
		return ErrInvalidPeriod
	}
	return nil
}

// PayrollRunResponse carries a run plus its per-employee rows.
type PayrollRunResponse struct {
	Run       PayrollRun
	Employees []EmployeePayrollResponse
}

type EmployeePayrollResponse struct {
	EmployeePayroll
	Details []PayrollDetail
}
