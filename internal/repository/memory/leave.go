package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !dateOnly(aStart).After(dateOnly(bEnd)) && !dateOnly(aEnd).Before(dateOnly(bStart))
}

type leaveTypeRepository struct {
	store *Store
}

func (s *Store) LeaveTypeRepository() leave.LeaveTypeRepository {
	return &leaveTypeRepository{store: s}
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	defer r.store.lock(ctx)()

	lt, ok := r.store.leaveTypes[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *leaveTypeRepository) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	defer r.store.lock(ctx)()

	types := make([]leave.LeaveType, 0)
	for _, lt := range r.store.leaveTypes {
		if lt.IsActive {
			types = append(types, lt)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

type leaveBalanceRepository struct {
	store *Store
}

func (s *Store) LeaveBalanceRepository() leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{store: s}
}

func (r *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	defer r.store.lock(ctx)()

	for _, b := range r.store.leaveBalances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (r *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	defer r.store.lock(ctx)()

	balances := make([]leave.LeaveBalance, 0)
	for _, b := range r.store.leaveBalances {
		if b.EmployeeID == employeeID && b.Year == year {
			if lt, ok := r.store.leaveTypes[b.LeaveTypeID]; ok {
				name := lt.Name
				b.LeaveTypeName = &name
			}
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool {
		var ni, nj string
		if balances[i].LeaveTypeName != nil {
			ni = *balances[i].LeaveTypeName
		}
		if balances[j].LeaveTypeName != nil {
			nj = *balances[j].LeaveTypeName
		}
		return ni < nj
	})
	return balances, nil
}

func (r *leaveBalanceRepository) CreateIfAbsent(ctx context.Context, balance leave.LeaveBalance) (bool, error) {
	defer r.store.lock(ctx)()

	for _, b := range r.store.leaveBalances {
		if b.EmployeeID == balance.EmployeeID && b.LeaveTypeID == balance.LeaveTypeID && b.Year == balance.Year {
			return false, nil
		}
	}

	balance.ID = newID()
	now := time.Now()
	balance.CreatedAt = now
	balance.UpdatedAt = now
	r.store.leaveBalances[balance.ID] = balance
	return true, nil
}

func (r *leaveBalanceRepository) Consume(ctx context.Context, balanceID string, days decimal.Decimal) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.leaveBalances[balanceID]
	if !ok || b.RemainingDays.LessThan(days) {
		return leave.ErrInsufficientBalance
	}

	b.UsedDays = b.UsedDays.Add(days)
	b.RemainingDays = b.RemainingDays.Sub(days)
	b.UpdatedAt = time.Now()
	r.store.leaveBalances[balanceID] = b
	return nil
}

func (r *leaveBalanceRepository) Adjust(ctx context.Context, balanceID string, deltaTotal, deltaCarried decimal.Decimal) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.leaveBalances[balanceID]
	if !ok || b.RemainingDays.Add(deltaTotal).Add(deltaCarried).IsNegative() {
		return leave.ErrNegativeAdjustment
	}

	b.TotalDays = b.TotalDays.Add(deltaTotal)
	b.CarriedForwardDays = b.CarriedForwardDays.Add(deltaCarried)
	b.RemainingDays = b.RemainingDays.Add(deltaTotal).Add(deltaCarried)
	b.UpdatedAt = time.Now()
	r.store.leaveBalances[balanceID] = b
	return nil
}

type leaveRequestRepository struct {
	store *Store
}

func (s *Store) LeaveRequestRepository() leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: s}
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	request.ID = newID()
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.store.leaveRequests[request.ID] = request
	return request, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	req, ok := r.store.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	r.store.joinNames(&req)
	return req, nil
}

func (s *Store) joinNames(req *leave.LeaveRequest) {
	if lt, ok := s.leaveTypes[req.LeaveTypeID]; ok {
		name := lt.Name
		req.LeaveTypeName = &name
	}
	if emp, ok := s.employees[req.EmployeeID]; ok {
		name := emp.FullName
		req.EmployeeName = &name
	}
}

func (r *leaveRequestRepository) Update(ctx context.Context, input leave.UpdateLeaveRequestInput) error {
	defer r.store.lock(ctx)()

	req, ok := r.store.leaveRequests[input.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}

	if input.LeaveTypeID != nil {
		req.LeaveTypeID = *input.LeaveTypeID
	}
	if input.StartDate != nil {
		req.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		req.EndDate = *input.EndDate
	}
	if input.TotalDays != nil {
		req.TotalDays = *input.TotalDays
	}
	if input.Reason != nil {
		req.Reason = *input.Reason
	}
	if input.Status != nil {
		req.Status = *input.Status
	}
	if input.ApproverID != nil {
		req.ApproverID = input.ApproverID
	}
	if input.ApprovedAt != nil {
		req.ApprovedAt = input.ApprovedAt
	}
	if input.ApproverComment != nil {
		req.ApproverComment = input.ApproverComment
	}
	req.UpdatedAt = time.Now()

	r.store.leaveRequests[input.ID] = req
	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.leaveRequests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.store.leaveRequests, id)
	return nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	requests := make([]leave.LeaveRequest, 0)
	for _, req := range r.store.leaveRequests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LeaveTypeID != nil && req.LeaveTypeID != *filter.LeaveTypeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.Year != nil && req.StartDate.Year() != *filter.Year {
			continue
		}
		r.store.joinNames(&req)
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (r *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	defer r.store.lock(ctx)()

	for _, req := range r.store.leaveRequests {
		if req.EmployeeID != employeeID || req.ID == excludeID {
			continue
		}
		if req.Status != leave.LeaveRequestStatusPending && req.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if overlaps(req.StartDate, req.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) SumPendingDays(ctx context.Context, employeeID, leaveTypeID string, year int, excludeID string) (decimal.Decimal, error) {
	defer r.store.lock(ctx)()

	sum := decimal.Zero
	for _, req := range r.store.leaveRequests {
		if req.EmployeeID != employeeID || req.LeaveTypeID != leaveTypeID || req.ID == excludeID {
			continue
		}
		if req.Status != leave.LeaveRequestStatusPending || req.StartDate.Year() != year {
			continue
		}
		sum = sum.Add(req.TotalDays)
	}
	return sum, nil
}

func (r *leaveRequestRepository) ListApprovedUnpaidOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	defer r.store.lock(ctx)()

	requests := make([]leave.LeaveRequest, 0)
	for _, req := range r.store.leaveRequests {
		if req.EmployeeID != employeeID || req.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		lt, ok := r.store.leaveTypes[req.LeaveTypeID]
		if !ok || lt.IsPaid {
			continue
		}
		if overlaps(req.StartDate, req.EndDate, from, to) {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].StartDate.Before(requests[j].StartDate)
	})
	return requests, nil
}

type holidayRepository struct {
	store *Store
}

func (s *Store) HolidayRepository() leave.HolidayRepository {
	return &holidayRepository{store: s}
}

func (r *holidayRepository) ListActiveDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	defer r.store.lock(ctx)()

	from, to = dateOnly(from), dateOnly(to)
	dates := make([]time.Time, 0)
	for _, h := range r.store.holidays {
		if !h.IsActive {
			continue
		}
		d := dateOnly(h.Date)
		if !d.Before(from) && !d.After(to) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
