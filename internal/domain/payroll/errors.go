package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this month")
	ErrInvalidMonth               = errors.New("invalid month, expected YYYY-MM")
	ErrRunInProgress              = errors.New("payroll run already in progress for this month")
	ErrPayslipNotAvailable        = errors.New("payslip file not available")
	ErrNotRecordOwner             = errors.New("payslip belongs to another employee")
)
