package memory

import (
	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
)

// Seed helpers populate the reference tables the engine reads but never
// writes. The memory driver gets its employees, leave types, holidays,
// attendance and salary structures through these.

func (s *Store) AddEmployee(emp employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emp.ID == "" {
		emp.ID = newID()
	}
	s.employees[emp.ID] = emp
	return emp
}

func (s *Store) AddLeaveType(lt leave.LeaveType) leave.LeaveType {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lt.ID == "" {
		lt.ID = newID()
	}
	s.leaveTypes[lt.ID] = lt
	return lt
}

func (s *Store) AddHoliday(h leave.PublicHoliday) leave.PublicHoliday {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = newID()
	}
	s.holidays[h.ID] = h
	return h
}

func (s *Store) AddAttendanceRecord(rec attendance.Record) attendance.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = newID()
	}
	s.attendanceRecords[rec.ID] = rec
	return rec
}

func (s *Store) AddSalaryComponent(sc payroll.SalaryComponent) payroll.SalaryComponent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ID == "" {
		sc.ID = newID()
	}
	s.salaryComponents[sc.ID] = sc
	return sc
}

func (s *Store) AddSalaryStructureItem(item payroll.SalaryStructureItem) payroll.SalaryStructureItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
	}
	s.salaryStructures[item.ID] = item
	return item
}
