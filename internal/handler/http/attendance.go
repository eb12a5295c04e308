package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Amend(w http.ResponseWriter, r *http.Request)
	ListEmployeeMonth(w http.ResponseWriter, r *http.Request)
	ListOwnMonth(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	GetMonthSummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("Mark attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked", resp)
}

// Amend implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Amend(w http.ResponseWriter, r *http.Request) {
	var amendReq attendance.AmendAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&amendReq); err != nil {
		slog.Error("Amend attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.Amend(r.Context(), amendReq)
	if err != nil {
		slog.Error("Amend attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance amended", resp)
}

// ListEmployeeMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month := monthOrCurrent(r)

	resp, err := h.attendanceService.ListEmployeeMonth(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListOwnMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListOwnMonth(w http.ResponseWriter, r *http.Request) {
	month := monthOrCurrent(r)

	resp, err := h.attendanceService.ListOwnMonth(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	month := monthOrCurrent(r)

	resp, err := h.attendanceService.ListMonth(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetMonthSummary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month := monthOrCurrent(r)

	resp, err := h.attendanceService.GetMonthSummary(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func monthOrCurrent(r *http.Request) string {
	month := r.URL.Query().Get("month")
	if month == "" {
		return payroll.CurrentMonth()
	}
	return month
}
