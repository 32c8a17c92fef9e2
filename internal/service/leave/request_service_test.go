package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/repository/memory"
)

type leaveFixture struct {
	store    *memory.Store
	requests *RequestService
	balances *BalanceService

	employee employee.Employee
	annual   leave.LeaveType
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()

	store := memory.NewStore()

	f := &leaveFixture{
		store: store,
		requests: NewRequestService(
			store.LeaveRequestRepository(),
			store.LeaveBalanceRepository(),
			store.LeaveTypeRepository(),
			store.HolidayRepository(),
			store.EmployeeRepository(),
			store,
		),
		balances: NewBalanceService(
			store.LeaveBalanceRepository(),
			store.LeaveRequestRepository(),
			store.LeaveTypeRepository(),
			store.EmployeeRepository(),
		),
	}

	f.employee = store.AddEmployee(employee.Employee{
		FullName:         "Ayu Lestari",
		EmploymentStatus: "Active",
		Salary:           decimal.NewFromInt(5000),
		HireDate:         time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
	})
	f.annual = store.AddLeaveType(leave.LeaveType{
		Name:               "Annual Leave",
		DefaultDaysPerYear: decimal.NewFromInt(12),
		IsPaid:             true,
		RequiresApproval:   true,
		IsActive:           true,
	})

	return f
}

// seedBalance creates a 2025 balance row with the given remaining days.
func (f *leaveFixture) seedBalance(t *testing.T, remaining int64) {
	t.Helper()

	days := decimal.NewFromInt(remaining)
	created, err := f.store.LeaveBalanceRepository().CreateIfAbsent(context.Background(), leave.LeaveBalance{
		EmployeeID:         f.employee.ID,
		LeaveTypeID:        f.annual.ID,
		Year:               2025,
		TotalDays:          days,
		UsedDays:           decimal.Zero,
		RemainingDays:      days,
		CarriedForwardDays: decimal.Zero,
	})
	require.NoError(t, err)
	require.True(t, created)
}

// seedPending inserts a pending request directly, bypassing Apply's
// reservation check.
func (f *leaveFixture) seedPending(t *testing.T, start, end string, days int64) leave.LeaveRequest {
	t.Helper()

	startDate, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)
	endDate, err := time.Parse("2006-01-02", end)
	require.NoError(t, err)

	req, err := f.store.LeaveRequestRepository().Create(context.Background(), leave.LeaveRequest{
		EmployeeID:  f.employee.ID,
		LeaveTypeID: f.annual.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   decimal.NewFromInt(days),
		Reason:      "seeded",
		Status:      leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	return req
}

func (f *leaveFixture) apply(start, end string) (leave.LeaveRequest, error) {
	return f.requests.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID:  f.employee.ID,
		LeaveTypeID: f.annual.ID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "family matters",
	})
}

func TestApply_FullWorkingWeek(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	// 2025-06-02 is a Monday
	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusPending, request.Status)
	assert.True(t, request.TotalDays.Equal(decimal.NewFromInt(5)), "total days %s", request.TotalDays)
	assert.NotEmpty(t, request.ID)
}

func TestApply_HolidayReducesDays(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	f.store.AddHoliday(leave.PublicHoliday{
		Name:     "Pancasila Day",
		Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)
	assert.True(t, request.TotalDays.Equal(decimal.NewFromInt(4)), "total days %s", request.TotalDays)
}

func TestApply_WeekendOnlyRange(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	_, err := f.apply("2025-06-07", "2025-06-08")
	assert.ErrorIs(t, err, leave.ErrZeroWorkingDays)
}

func TestApply_EndBeforeStart(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	_, err := f.apply("2025-06-06", "2025-06-02")
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApply_CrossYearRange(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	_, err := f.apply("2025-12-29", "2026-01-02")
	assert.ErrorIs(t, err, leave.ErrCrossYearRange)
}

func TestApply_OverlappingRequest(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	_, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	_, err = f.apply("2025-06-05", "2025-06-10")
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestApply_RejectedRequestDoesNotBlock(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	first, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	_, err = f.requests.Reject(context.Background(), first.ID, "manager-1", "coverage conflict")
	require.NoError(t, err)

	_, err = f.apply("2025-06-02", "2025-06-06")
	assert.NoError(t, err)
}

func TestApply_NoBalanceRecord(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)

	_, err := f.apply("2025-06-02", "2025-06-06")
	assert.ErrorIs(t, err, leave.ErrNoBalanceRecord)
}

func TestApply_PendingRequestsReserveBalance(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 5)

	// Mon-Wed, 3 working days
	_, err := f.apply("2025-06-02", "2025-06-04")
	require.NoError(t, err)

	// Non-overlapping Mon-Wed the week after. Stored remaining is still 5
	// but 3 of it is reserved by the pending request.
	_, err = f.apply("2025-06-09", "2025-06-11")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApprove_ConsumesBalance(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	approved, err := f.requests.Approve(context.Background(), request.ID, "manager-1", "enjoy")
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, "manager-1", *approved.ApproverID)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApproverComment)
	assert.Equal(t, "enjoy", *approved.ApproverComment)

	balance, err := f.balances.GetBalance(context.Background(), f.employee.ID, f.annual.ID, 2025)
	require.NoError(t, err)
	assert.True(t, balance.UsedDays.Equal(decimal.NewFromInt(5)), "used %s", balance.UsedDays)
	assert.True(t, balance.RemainingDays.Equal(decimal.NewFromInt(7)), "remaining %s", balance.RemainingDays)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	_, err = f.requests.Approve(context.Background(), request.ID, "manager-1", "")
	require.NoError(t, err)

	_, err = f.requests.Approve(context.Background(), request.ID, "manager-1", "")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestApprove_InsufficientBalance(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 2)

	request := f.seedPending(t, "2025-06-02", "2025-06-06", 5)

	_, err := f.requests.Approve(context.Background(), request.ID, "manager-1", "")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApprove_ConcurrentOverdraw(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 5)

	// Two 3-day requests against 5 remaining days. At most one may win.
	first := f.seedPending(t, "2025-06-02", "2025-06-04", 3)
	second := f.seedPending(t, "2025-06-09", "2025-06-11", 3)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, requestID string) {
			defer wg.Done()
			_, err := f.requests.Approve(context.Background(), requestID, "manager-1", "")
			results[i] = err
		}(i, id)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, successes)

	balance, err := f.balances.GetBalance(context.Background(), f.employee.ID, f.annual.ID, 2025)
	require.NoError(t, err)
	assert.True(t, balance.RemainingDays.Equal(decimal.NewFromInt(2)), "remaining %s", balance.RemainingDays)
}

func TestReject_LeavesBalanceUntouched(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	rejected, err := f.requests.Reject(context.Background(), request.ID, "manager-1", "coverage conflict")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)

	balance, err := f.balances.GetBalance(context.Background(), f.employee.ID, f.annual.ID, 2025)
	require.NoError(t, err)
	assert.True(t, balance.UsedDays.IsZero())
	assert.True(t, balance.RemainingDays.Equal(decimal.NewFromInt(12)))
}

func TestUpdate_RecomputesDays(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	newEnd := "2025-06-04"
	updated, err := f.requests.Update(context.Background(), request.ID, leave.UpdateLeaveRequestRequest{
		EndDate: &newEnd,
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalDays.Equal(decimal.NewFromInt(3)), "total days %s", updated.TotalDays)
}

func TestUpdate_RejectsProcessedRequest(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)
	_, err = f.requests.Approve(context.Background(), request.ID, "manager-1", "")
	require.NoError(t, err)

	newEnd := "2025-06-04"
	_, err = f.requests.Update(context.Background(), request.ID, leave.UpdateLeaveRequestRequest{EndDate: &newEnd})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestUpdate_RejectsCrossYearRange(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	request, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)

	newStart, newEnd := "2025-12-29", "2026-01-02"
	_, err = f.requests.Update(context.Background(), request.ID, leave.UpdateLeaveRequestRequest{
		StartDate: &newStart,
		EndDate:   &newEnd,
	})
	assert.ErrorIs(t, err, leave.ErrCrossYearRange)
}

func TestDelete_PendingAndRejectedOnly(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 12)

	pending, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)
	require.NoError(t, f.requests.Delete(context.Background(), pending.ID))

	_, err = f.requests.Get(context.Background(), pending.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	approved, err := f.apply("2025-06-02", "2025-06-06")
	require.NoError(t, err)
	_, err = f.requests.Approve(context.Background(), approved.ID, "manager-1", "")
	require.NoError(t, err)

	err = f.requests.Delete(context.Background(), approved.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestApprove_FailureLeavesRequestPending(t *testing.T) {
	t.Parallel()
	f := newLeaveFixture(t)
	f.seedBalance(t, 2)

	request := f.seedPending(t, "2025-06-02", "2025-06-06", 5)

	_, err := f.requests.Approve(context.Background(), request.ID, "manager-1", "")
	require.Error(t, err)
	require.True(t, errors.Is(err, leave.ErrInsufficientBalance))

	// The failed transaction must not leave the request approved.
	reloaded, err := f.requests.Get(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, reloaded.Status)
}
