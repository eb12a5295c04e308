package response

import (
	"errors"
	"net/http"

	"github.com/epayroll/payroll-backend-go/internal/domain/attendance"
	"github.com/epayroll/payroll-backend-go/internal/domain/auth"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/domain/payroll"
	"github.com/epayroll/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrOTPNotFound):
		NotFound(w, "No verification code found")
	case errors.Is(err, auth.ErrOTPExpired):
		BadRequest(w, "Verification code expired", nil)
	case errors.Is(err, auth.ErrOTPMismatch):
		BadRequest(w, "Verification code does not match", nil)
	case errors.Is(err, auth.ErrRegistrationNotFound):
		NotFound(w, "Pending registration not found")
	case errors.Is(err, auth.ErrRegistrationExpired):
		BadRequest(w, "Registration expired, please register again", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, attendance.ErrDateInFuture):
		BadRequest(w, "Cannot mark attendance for a future date", nil)
	case errors.Is(err, attendance.ErrEmployeeNotActive):
		Forbidden(w, "Employee account is inactive")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll already processed for this month")
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, payroll.ErrRunInProgress):
		Conflict(w, "A payroll run for this month is already in progress")
	case errors.Is(err, payroll.ErrPayslipNotAvailable):
		NotFound(w, "Payslip is not available for this record")
	case errors.Is(err, payroll.ErrNotRecordOwner):
		Forbidden(w, "You may only access your own payslips")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
