package employee

import (
	"time"

	"github.com/epayroll/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Phone       *string         `json:"phone,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Designation *string         `json:"designation,omitempty"`
	JoiningDate string          `json:"joining_date"` // YYYY-MM-DD
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Role        string          `json:"role,omitempty"` // defaults to "employee"
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.JoiningDate != "" {
		if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Designation *string         `json:"designation,omitempty"`
	JoiningDate string          `json:"joining_date"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Role        Role            `json:"role"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Department:  e.Department,
		Designation: e.Designation,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		BaseSalary:  e.BaseSalary,
		Role:        e.Role,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
}
