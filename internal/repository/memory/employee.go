package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func (s *Store) EmployeeRepository() employee.Repository {
	return &employeeRepository{store: s}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.store.lock(ctx)()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.ListByStatuses(ctx, []string{"active"})
}

func (r *employeeRepository) ListByStatuses(ctx context.Context, statuses []string) ([]employee.Employee, error) {
	defer r.store.lock(ctx)()

	wanted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		wanted[strings.ToLower(s)] = true
	}

	employees := make([]employee.Employee, 0)
	for _, emp := range r.store.employees {
		if wanted[strings.ToLower(emp.EmploymentStatus)] {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].FullName < employees[j].FullName })
	return employees, nil
}

type attendanceRepository struct {
	store *Store
}

func (s *Store) AttendanceRepository() attendance.Repository {
	return &attendanceRepository{store: s}
}

func (r *attendanceRepository) CountAbsences(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	defer r.store.lock(ctx)()

	from, to = dateOnly(from), dateOnly(to)
	count := 0
	for _, rec := range r.store.attendanceRecords {
		if rec.EmployeeID != employeeID || rec.Status != attendance.StatusAbsent {
			continue
		}
		d := dateOnly(rec.Date)
		if !d.Before(from) && !d.After(to) {
			count++
		}
	}
	return count, nil
}
