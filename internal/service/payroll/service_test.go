package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/repository/memory"
)

type payrollFixture struct {
	store      *memory.Store
	aggregator *Aggregator
	runs       *RunService

	employee employee.Employee
	basic    payroll.SalaryComponent
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()

	store := memory.NewStore()
	aggregator := NewAggregator(store.AttendanceRepository(), store.LeaveRequestRepository())

	f := &payrollFixture{
		store:      store,
		aggregator: aggregator,
		runs: NewRunService(
			store.PayrollRunRepository(),
			store.SalaryStructureRepository(),
			store.EmployeeRepository(),
			aggregator,
			store,
		),
	}

	f.employee = store.AddEmployee(employee.Employee{
		FullName:         "Citra Dewi",
		EmploymentStatus: "Active",
		Salary:           decimal.NewFromInt(3000),
		HireDate:         time.Date(2022, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	f.basic = store.AddSalaryComponent(payroll.SalaryComponent{
		Name:     "Base Salary",
		Type:     payroll.ComponentTypeEarning,
		IsActive: true,
	})
	store.AddSalaryStructureItem(payroll.SalaryStructureItem{
		EmployeeID:  f.employee.ID,
		ComponentID: f.basic.ID,
		Amount:      decimal.NewFromInt(3000),
	})

	return f
}

// seedAbsences records n absent days for the employee starting at the given
// date.
func (f *payrollFixture) seedAbsences(employeeID string, from time.Time, n int) {
	for i := 0; i < n; i++ {
		f.store.AddAttendanceRecord(attendance.Record{
			EmployeeID: employeeID,
			Date:       from.AddDate(0, 0, i),
			Status:     attendance.StatusAbsent,
		})
	}
}

func (f *payrollFixture) process(t *testing.T, month, year int) payroll.PayrollRunResponse {
	t.Helper()
	run, err := f.runs.Process(context.Background(), payroll.ProcessPayrollRequest{Month: month, Year: year})
	require.NoError(t, err)
	return run
}

func TestProcess_ProRataByWorkedDays(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	// September has 30 days; 5 absences leave 25 worked days.
	f.seedAbsences(f.employee.ID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 5)

	run := f.process(t, 9, 2025)

	require.Len(t, run.Employees, 1)
	row := run.Employees[0]
	assert.Equal(t, 25, row.DaysWorked)
	assert.Equal(t, 5, row.LossOfPayDays)
	assert.Equal(t, payroll.PaymentStatusPending, row.PaymentStatus)

	require.Len(t, row.Details, 1)
	assert.True(t, row.Details[0].Amount.Equal(decimal.NewFromInt(2500)), "detail %s", row.Details[0].Amount)
	assert.True(t, row.NetSalary.Equal(decimal.NewFromInt(2500)), "net %s", row.NetSalary)
	assert.True(t, run.Run.TotalPayout.Equal(decimal.NewFromInt(2500)), "payout %s", run.Run.TotalPayout)
	assert.Equal(t, payroll.RunStatusDraft, run.Run.Status)
}

func TestProcess_FullMonthPaysFullAmount(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	run := f.process(t, 9, 2025)

	require.Len(t, run.Employees, 1)
	assert.Equal(t, 30, run.Employees[0].DaysWorked)
	assert.True(t, run.Employees[0].NetSalary.Equal(decimal.NewFromInt(3000)))
}

func TestProcess_DeductionComponentsSubtract(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	insurance := f.store.AddSalaryComponent(payroll.SalaryComponent{
		Name:     "Health Insurance",
		Type:     payroll.ComponentTypeDeduction,
		IsActive: true,
	})
	f.store.AddSalaryStructureItem(payroll.SalaryStructureItem{
		EmployeeID:  f.employee.ID,
		ComponentID: insurance.ID,
		Amount:      decimal.NewFromInt(300),
	})

	run := f.process(t, 9, 2025)

	require.Len(t, run.Employees, 1)
	row := run.Employees[0]
	assert.True(t, row.TotalEarnings.Equal(decimal.NewFromInt(3000)), "earnings %s", row.TotalEarnings)
	assert.True(t, row.TotalDeductions.Equal(decimal.NewFromInt(300)), "deductions %s", row.TotalDeductions)
	assert.True(t, row.NetSalary.Equal(decimal.NewFromInt(2700)), "net %s", row.NetSalary)
	require.Len(t, row.Details, 2)
}

func TestProcess_SkipsEmployeesWithoutStructure(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	f.store.AddEmployee(employee.Employee{
		FullName:         "Doni Pratama",
		EmploymentStatus: "probation",
		Salary:           decimal.NewFromInt(2000),
	})

	run := f.process(t, 9, 2025)
	require.Len(t, run.Employees, 1)
	assert.Equal(t, f.employee.ID, run.Employees[0].EmployeeID)
}

func TestProcess_IncludesProbationExcludesResigned(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	probation := f.store.AddEmployee(employee.Employee{
		FullName:         "Eka Putri",
		EmploymentStatus: "Probation",
		Salary:           decimal.NewFromInt(2000),
	})
	f.store.AddSalaryStructureItem(payroll.SalaryStructureItem{
		EmployeeID:  probation.ID,
		ComponentID: f.basic.ID,
		Amount:      decimal.NewFromInt(2000),
	})

	resigned := f.store.AddEmployee(employee.Employee{
		FullName:         "Fajar Nugroho",
		EmploymentStatus: "resigned",
		Salary:           decimal.NewFromInt(2000),
	})
	f.store.AddSalaryStructureItem(payroll.SalaryStructureItem{
		EmployeeID:  resigned.ID,
		ComponentID: f.basic.ID,
		Amount:      decimal.NewFromInt(2000),
	})

	run := f.process(t, 9, 2025)
	require.Len(t, run.Employees, 2)
	for _, row := range run.Employees {
		assert.NotEqual(t, resigned.ID, row.EmployeeID)
	}
}

func TestProcess_InvalidPeriod(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	_, err := f.runs.Process(context.Background(), payroll.ProcessPayrollRequest{Month: 13, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = f.runs.Process(context.Background(), payroll.ProcessPayrollRequest{Month: 1, Year: 1999})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestProcess_ReplacesExistingDraft(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	first := f.process(t, 9, 2025)
	second := f.process(t, 9, 2025)

	assert.NotEqual(t, first.Run.ID, second.Run.ID)
	assert.Len(t, second.Employees, len(first.Employees))
	assert.True(t, second.Run.TotalPayout.Equal(first.Run.TotalPayout))

	runs, err := f.runs.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second.Run.ID, runs[0].ID)

	// The replaced draft's rows must be gone.
	_, err = f.runs.GetRun(context.Background(), first.Run.ID)
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestProcess_RefusesFinalizedPeriod(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	run := f.process(t, 9, 2025)
	_, err := f.runs.Finalize(context.Background(), run.Run.ID, "admin-1")
	require.NoError(t, err)

	_, err = f.runs.Process(context.Background(), payroll.ProcessPayrollRequest{Month: 9, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrAlreadyFinalized)
}

func TestFinalize_MarksRowsPaid(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	run := f.process(t, 9, 2025)

	finalized, err := f.runs.Finalize(context.Background(), run.Run.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusFinalized, finalized.Status)
	require.NotNil(t, finalized.FinalizedBy)
	assert.Equal(t, "admin-1", *finalized.FinalizedBy)
	assert.NotNil(t, finalized.FinalizedAt)

	reloaded, err := f.runs.GetRun(context.Background(), run.Run.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Employees, 1)
	assert.Equal(t, payroll.PaymentStatusPaid, reloaded.Employees[0].PaymentStatus)

	_, err = f.runs.Finalize(context.Background(), run.Run.ID, "admin-1")
	assert.ErrorIs(t, err, payroll.ErrAlreadyFinalized)
}

func TestDeleteRun_DraftOnly(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	run := f.process(t, 9, 2025)
	require.NoError(t, f.runs.DeleteRun(context.Background(), run.Run.ID))

	_, err := f.runs.GetRun(context.Background(), run.Run.ID)
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)

	// The period is free again after the draft is removed.
	redone := f.process(t, 9, 2025)

	_, err = f.runs.Finalize(context.Background(), redone.Run.ID, "admin-1")
	require.NoError(t, err)
	err = f.runs.DeleteRun(context.Background(), redone.Run.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeleteFinalized)
}

func TestAggregator_ClipsUnpaidLeaveToMonth(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	unpaid := f.store.AddLeaveType(leave.LeaveType{
		Name:     "Unpaid Leave",
		IsPaid:   false,
		IsActive: true,
	})
	_, err := f.store.LeaveRequestRepository().Create(context.Background(), leave.LeaveRequest{
		EmployeeID:  f.employee.ID,
		LeaveTypeID: unpaid.ID,
		StartDate:   time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(5),
		Status:      leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)

	f.seedAbsences(f.employee.ID, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), 2)

	monthStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	// Sep 1-3 of the leave fall inside the month, plus 2 absences.
	lossOfPay, err := f.aggregator.LossOfPayDays(context.Background(), f.employee.ID, monthStart, monthEnd)
	require.NoError(t, err)
	assert.True(t, lossOfPay.Equal(decimal.NewFromInt(5)), "loss of pay %s", lossOfPay)
}

func TestAggregator_IgnoresPaidLeave(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	paid := f.store.AddLeaveType(leave.LeaveType{
		Name:     "Annual Leave",
		IsPaid:   true,
		IsActive: true,
	})
	_, err := f.store.LeaveRequestRepository().Create(context.Background(), leave.LeaveRequest{
		EmployeeID:  f.employee.ID,
		LeaveTypeID: paid.ID,
		StartDate:   time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(5),
		Status:      leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)

	monthStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	lossOfPay, err := f.aggregator.LossOfPayDays(context.Background(), f.employee.ID, monthStart, monthEnd)
	require.NoError(t, err)
	assert.True(t, lossOfPay.IsZero(), "loss of pay %s", lossOfPay)
}

func TestProcess_UnpaidLeaveReducesPay(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture(t)

	unpaid := f.store.AddLeaveType(leave.LeaveType{
		Name:     "Unpaid Leave",
		IsPaid:   false,
		IsActive: true,
	})
	_, err := f.store.LeaveRequestRepository().Create(context.Background(), leave.LeaveRequest{
		EmployeeID:  f.employee.ID,
		LeaveTypeID: unpaid.ID,
		StartDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(5),
		Status:      leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)

	run := f.process(t, 9, 2025)

	require.Len(t, run.Employees, 1)
	assert.Equal(t, 25, run.Employees[0].DaysWorked)
	assert.True(t, run.Employees[0].NetSalary.Equal(decimal.NewFromInt(2500)), "net %s", run.Employees[0].NetSalary)
}
