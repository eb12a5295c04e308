package payroll

import (
	"github.com/epayroll/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RunPayrollRequest struct {
	Month string `json:"month"` // "YYYY-MM"
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryBreakdownResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Month         string          `json:"month"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	TotalDays     int             `json:"total_days"`
	EffectiveDays decimal.Decimal `json:"effective_days"`
	PerDayRate    decimal.Decimal `json:"per_day_rate"`
	EarnedBasic   decimal.Decimal `json:"earned_basic"`
	HRA           decimal.Decimal `json:"hra"`
	Bonus         decimal.Decimal `json:"bonus"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	EPF           decimal.Decimal `json:"epf"`
	TDS           decimal.Decimal `json:"tds"`
	LOPDeduction  decimal.Decimal `json:"lop_deduction"`
	NetSalary     decimal.Decimal `json:"net_salary"`
}

type PayrollRecordResponse struct {
	TransactionID string          `json:"transaction_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Month         string          `json:"month"`
	DaysPresent   decimal.Decimal `json:"days_present"`
	TotalDays     int             `json:"total_days"`
	EarnedBasic   decimal.Decimal `json:"earned_basic"`
	HRA           decimal.Decimal `json:"hra"`
	Bonus         decimal.Decimal `json:"bonus"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	EPF           decimal.Decimal `json:"epf"`
	TDS           decimal.Decimal `json:"tds"`
	LOPDeduction  decimal.Decimal `json:"lop_deduction"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	HasPayslip    bool            `json:"has_payslip"`
	PaymentDate   string          `json:"payment_date"`
	Status        PayrollStatus   `json:"status"`
}

type MonthlyTotalResponse struct {
	Month    string          `json:"month"`
	Records  int64           `json:"records"`
	TotalNet decimal.Decimal `json:"total_net"`
}

func ToRecordResponse(rec PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		TransactionID: rec.TransactionID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		Month:         rec.Month,
		DaysPresent:   rec.DaysPresent,
		TotalDays:     rec.TotalDays,
		EarnedBasic:   rec.EarnedBasic,
		HRA:           rec.HRA,
		Bonus:         rec.Bonus,
		GrossSalary:   rec.GrossSalary,
		EPF:           rec.EPF,
		TDS:           rec.TDS,
		LOPDeduction:  rec.LOPDeduction,
		NetSalary:     rec.NetSalary,
		HasPayslip:    rec.PDFPath != nil,
		PaymentDate:   rec.PaymentDate.Format("2006-01-02"),
		Status:        rec.Status,
	}
}
