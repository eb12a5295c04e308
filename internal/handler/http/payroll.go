package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	ListEmployee(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Run implements PayrollHandler.
func (h *PayrollHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var runReq payroll.RunPayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&runReq); err != nil {
		slog.Error("Run payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.payrollService.RunPayroll(r.Context(), runReq)
	if err != nil {
		slog.Error("Run payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run finished", summary)
}

// Preview implements PayrollHandler.
func (h *PayrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month := monthOrCurrent(r)

	resp, err := h.payrollService.CalculateSalary(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListEmployee implements PayrollHandler.
func (h *PayrollHandlerImpl) ListEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	resp, err := h.payrollService.ListEmployeePayslips(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListOwn implements PayrollHandler.
func (h *PayrollHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListOwnPayslips(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListMonth implements PayrollHandler.
func (h *PayrollHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	month := monthOrCurrent(r)

	resp, err := h.payrollService.ListMonth(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Download implements PayrollHandler.
func (h *PayrollHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	file, name, err := h.payrollService.DownloadPayslip(r.Context(), transactionID)
	if err != nil {
		slog.Error("Download payslip service error", "transaction_id", transactionID, "error", err)
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Download payslip stream error", "transaction_id", transactionID, "error", err)
	}
}
