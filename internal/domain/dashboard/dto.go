package dashboard

import (
	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type AdminDashboardResponse struct {
	TotalEmployees    int64                          `json:"total_employees"`
	ActiveEmployees   int64                          `json:"active_employees"`
	InactiveEmployees int64                          `json:"inactive_employees"`
	Departments       []DepartmentCount              `json:"departments"`
	PayrollTotals     []payroll.MonthlyTotalResponse `json:"payroll_totals"`
	RecentLogs        []adminlog.LogResponse         `json:"recent_logs"`
}

type EmployeeDashboardResponse struct {
	Month          string                          `json:"month"`
	Present        int                             `json:"present"`
	Absent         int                             `json:"absent"`
	Leave          int                             `json:"leave"`
	HalfDay        int                             `json:"half_day"`
	EffectiveDays  decimal.Decimal                 `json:"effective_days"`
	RecentPayslips []payroll.PayrollRecordResponse `json:"recent_payslips"`
}
