// Package memory implements the domain repositories on in-process maps.
// It backs STORAGE_DRIVER=memory deployments and the service test suites,
// and mirrors the transactional semantics of the postgresql driver:
// WithinTx runs its body atomically and rolls the store back on error.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
)

type txKey struct{}

// Store holds all tables. A single mutex serializes access; WithinTx keeps
// it held for the whole transaction and marks the context so repository
// calls inside the transaction skip re-locking.
type Store struct {
	mu sync.Mutex

	leaveTypes    map[string]leave.LeaveType
	leaveBalances map[string]leave.LeaveBalance
	leaveRequests map[string]leave.LeaveRequest
	holidays      map[string]leave.PublicHoliday

	employees         map[string]employee.Employee
	attendanceRecords map[string]attendance.Record

	salaryComponents map[string]payroll.SalaryComponent
	salaryStructures map[string]payroll.SalaryStructureItem
	payrollRuns      map[string]payroll.PayrollRun
	employeePayrolls map[string]payroll.EmployeePayroll
	payrollDetails   map[string]payroll.PayrollDetail
}

func NewStore() *Store {
	return &Store{
		leaveTypes:        make(map[string]leave.LeaveType),
		leaveBalances:     make(map[string]leave.LeaveBalance),
		leaveRequests:     make(map[string]leave.LeaveRequest),
		holidays:          make(map[string]leave.PublicHoliday),
		employees:         make(map[string]employee.Employee),
		attendanceRecords: make(map[string]attendance.Record),
		salaryComponents:  make(map[string]payroll.SalaryComponent),
		salaryStructures:  make(map[string]payroll.SalaryStructureItem),
		payrollRuns:       make(map[string]payroll.PayrollRun),
		employeePayrolls:  make(map[string]payroll.EmployeePayroll),
		payrollDetails:    make(map[string]payroll.PayrollDetail),
	}
}

// lock acquires the store mutex unless ctx already runs inside WithinTx,
// which holds it for the transaction's duration. Returns the matching
// unlock, a no-op in the transactional case.
func (s *Store) lock(ctx context.Context) func() {
	if inTx, _ := ctx.Value(txKey{}).(bool); inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx implements database.TxRunner. The store is snapshotted up
// front and restored wholesale when fn returns an error or panics, so a
// failed transaction leaves no partial writes behind.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()

	defer func() {
		if r := recover(); r != nil {
			s.restore(snapshot)
			panic(r)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

type storeSnapshot struct {
	leaveTypes        map[string]leave.LeaveType
	leaveBalances     map[string]leave.LeaveBalance
	leaveRequests     map[string]leave.LeaveRequest
	holidays          map[string]leave.PublicHoliday
	employees         map[string]employee.Employee
	attendanceRecords map[string]attendance.Record
	salaryComponents  map[string]payroll.SalaryComponent
	salaryStructures  map[string]payroll.SalaryStructureItem
	payrollRuns       map[string]payroll.PayrollRun
	employeePayrolls  map[string]payroll.EmployeePayroll
	payrollDetails    map[string]payroll.PayrollDetail
}

func (s *Store) snapshot() storeSnapshot {
	return storeSnapshot{
		leaveTypes:        copyMap(s.leaveTypes),
		leaveBalances:     copyMap(s.leaveBalances),
		leaveRequests:     copyMap(s.leaveRequests),
		holidays:          copyMap(s.holidays),
		employees:         copyMap(s.employees),
		attendanceRecords: copyMap(s.attendanceRecords),
		salaryComponents:  copyMap(s.salaryComponents),
		salaryStructures:  copyMap(s.salaryStructures),
		payrollRuns:       copyMap(s.payrollRuns),
		employeePayrolls:  copyMap(s.employeePayrolls),
		payrollDetails:    copyMap(s.payrollDetails),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.leaveTypes = snap.leaveTypes
	s.leaveBalances = snap.leaveBalances
	s.leaveRequests = snap.leaveRequests
	s.holidays = snap.holidays
	s.employees = snap.employees
	s.attendanceRecords = snap.attendanceRecords
	s.salaryComponents = snap.salaryComponents
	s.salaryStructures = snap.salaryStructures
	s.payrollRuns = snap.payrollRuns
	s.employeePayrolls = snap.employeePayrolls
	s.payrollDetails = snap.payrollDetails
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func newID() string {
	return uuid.NewString()
}
