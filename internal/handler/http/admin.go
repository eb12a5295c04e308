package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/backup"
	"github.com/epayroll/payroll-backend-go/internal/handler/http/response"
)

const defaultLogLimit = 50

type AdminHandler interface {
	RunBackup(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	backupService backup.BackupService
	adminLogRepo  adminlog.AdminLogRepository
}

func NewAdminHandler(backupService backup.BackupService, adminLogRepo adminlog.AdminLogRepository) AdminHandler {
	return &AdminHandlerImpl{
		backupService: backupService,
		adminLogRepo:  adminLogRepo,
	}
}

// RunBackup implements AdminHandler.
func (h *AdminHandlerImpl) RunBackup(w http.ResponseWriter, r *http.Request) {
	resp, err := h.backupService.Run(r.Context())
	if err != nil {
		slog.Error("Backup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Backup created", resp)
}

// ListLogs implements AdminHandler.
func (h *AdminHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	logs, err := h.adminLogRepo.ListRecent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]adminlog.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, adminlog.ToResponse(l))
	}

	response.Success(w, responses)
}
