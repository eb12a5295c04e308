package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyMarked     = errors.New("attendance already marked for this date")
	ErrInvalidStatus     = errors.New("invalid attendance status")
	ErrInvalidMonth      = errors.New("invalid month, expected YYYY-MM")
	ErrDateInFuture      = errors.New("attendance date cannot be in the future")
	ErrEmployeeNotActive = errors.New("cannot mark attendance for inactive employee")
)
