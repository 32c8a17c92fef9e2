package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/quantohr/payroll-backend-go/internal/config"
	"github.com/quantohr/payroll-backend-go/internal/domain/attendance"
	"github.com/quantohr/payroll-backend-go/internal/domain/employee"
	"github.com/quantohr/payroll-backend-go/internal/domain/leave"
	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	appHTTP "github.com/quantohr/payroll-backend-go/internal/handler/http"
	"github.com/quantohr/payroll-backend-go/internal/pkg/database"
	"github.com/quantohr/payroll-backend-go/internal/repository/memory"
	"github.com/quantohr/payroll-backend-go/internal/repository/postgresql"
	leaveService "github.com/quantohr/payroll-backend-go/internal/service/leave"
	payrollService "github.com/quantohr/payroll-backend-go/internal/service/payroll"
)

type repositories struct {
	tx database.TxRunner

	leaveTypes    leave.LeaveTypeRepository
	leaveBalances leave.LeaveBalanceRepository
	leaveRequests leave.LeaveRequestRepository
	holidays      leave.HolidayRepository

	employees  employee.Repository
	attendance attendance.Repository

	salaryStructures payroll.SalaryStructureRepository
	payrollRuns      payroll.PayrollRunRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal("Error initializing storage: ", err)
	}

	balanceService := leaveService.NewBalanceService(
		repos.leaveBalances,
		repos.leaveRequests,
		repos.leaveTypes,
		repos.employees,
	)
	requestService := leaveService.NewRequestService(
		repos.leaveRequests,
		repos.leaveBalances,
		repos.leaveTypes,
		repos.holidays,
		repos.employees,
		repos.tx,
	)
	aggregator := payrollService.NewAggregator(repos.attendance, repos.leaveRequests)
	runService := payrollService.NewRunService(
		repos.payrollRuns,
		repos.salaryStructures,
		repos.employees,
		aggregator,
		repos.tx,
	)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	calendarHandler := appHTTP.NewCalendarHandler(repos.holidays)
	leaveHandler := appHTTP.NewLeaveHandler(requestService, balanceService)
	payrollHandler := appHTTP.NewPayrollHandler(runService)

	router := appHTTP.NewRouter(cfg, tokenAuth, calendarHandler, leaveHandler, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}

func buildRepositories(cfg *config.Config) (repositories, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			tx:               postgresql.NewTxRunner(db),
			leaveTypes:       postgresql.NewLeaveTypeRepository(db),
			leaveBalances:    postgresql.NewLeaveBalanceRepository(db),
			leaveRequests:    postgresql.NewLeaveRequestRepository(db),
			holidays:         postgresql.NewHolidayRepository(db),
			employees:        postgresql.NewEmployeeRepository(db),
			attendance:       postgresql.NewAttendanceRepository(db),
			salaryStructures: postgresql.NewSalaryStructureRepository(db),
			payrollRuns:      postgresql.NewPayrollRunRepository(db),
		}, nil

	case "memory":
		store := memory.NewStore()
		return repositories{
			tx:               store,
			leaveTypes:       store.LeaveTypeRepository(),
			leaveBalances:    store.LeaveBalanceRepository(),
			leaveRequests:    store.LeaveRequestRepository(),
			holidays:         store.HolidayRepository(),
			employees:        store.EmployeeRepository(),
			attendance:       store.AttendanceRepository(),
			salaryStructures: store.SalaryStructureRepository(),
			payrollRuns:      store.PayrollRunRepository(),
		}, nil

	default:
		return repositories{}, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
