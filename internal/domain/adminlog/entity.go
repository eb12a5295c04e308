package adminlog

import "time"

// Action enum
type Action string

const (
	ActionEmployeeAdded       Action = "employee_added"
	ActionEmployeeUpdated     Action = "employee_updated"
	ActionEmployeeActivated   Action = "employee_activated"
	ActionEmployeeDeactivated Action = "employee_deactivated"
	ActionAttendanceMarked    Action = "attendance_marked"
	ActionAttendanceAmended   Action = "attendance_amended"
	ActionPayrollProcessed    Action = "payroll_processed"
	ActionBackupCreated       Action = "backup_created"
)

// AdminLog - Audit trail entry for an admin mutation
type AdminLog struct {
	ID          int64
	AdminID     string
	Action      Action
	Description string
	IPAddress   *string
	CreatedAt   time.Time
}

type LogResponse struct {
	ID          int64     `json:"id"`
	AdminID     string    `json:"admin_id"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToResponse(l AdminLog) LogResponse {
	return LogResponse{
		ID:          l.ID,
		AdminID:     l.AdminID,
		Action:      l.Action,
		Description: l.Description,
		IPAddress:   l.IPAddress,
		CreatedAt:   l.CreatedAt,
	}
}
