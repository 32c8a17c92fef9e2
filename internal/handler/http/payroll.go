package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quantohr/payroll-backend-go/internal/domain/payroll"
	"github.com/quantohr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/quantohr/payroll-backend-go/internal/handler/http/response"
	payrollService "github.com/quantohr/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	DeleteRun(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	runService *payrollService.RunService
}

func NewPayrollHandler(runService *payrollService.RunService) PayrollHandler {
	return &PayrollHandlerImpl{runService: runService}
}

// Process implements PayrollHandler.
func (p *PayrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessPayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	run, err := p.runService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run processed successfully", run)
}

// ListRuns implements PayrollHandler.
func (p *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := p.runService.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// GetRun implements PayrollHandler.
func (p *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := p.runService.GetRun(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// Finalize implements PayrollHandler.
func (p *PayrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	finalizedBy, ok := middleware.ActorID(r)
	if !ok {
		response.Unauthorized(w, "Missing employee_id claim")
		return
	}

	run, err := p.runService.Finalize(r.Context(), runID, finalizedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run finalized successfully", run)
}

// DeleteRun implements PayrollHandler.
func (p *PayrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	if err := p.runService.DeleteRun(r.Context(), runID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted successfully", nil)
}
