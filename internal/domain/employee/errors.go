package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrEmployeeInactive    = errors.New("employee account is inactive")
	ErrEmployeeHasNoSalary = errors.New("employee has no base salary configured")
)
