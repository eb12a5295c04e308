package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Status enum
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Employee - Directory entry, doubles as the login account
type Employee struct {
	ID           string // e.g. "EMP001"
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Department   *string
	Designation  *string
	JoiningDate  time.Time
	BaseSalary   decimal.Decimal
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
