package http

import (
	"net/http"

	"github.com/epayroll/payroll-backend-go/internal/domain/dashboard"
	"github.com/epayroll/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Admin implements DashboardHandler.
func (h *DashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.GetAdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Employee implements DashboardHandler.
func (h *DashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.GetEmployeeDashboard(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
