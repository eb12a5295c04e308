package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or malformed token")
	ErrTokenExpired         = errors.New("token expired")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrOTPNotFound          = errors.New("no verification code found")
	ErrOTPExpired           = errors.New("verification code expired")
	ErrOTPMismatch          = errors.New("verification code does not match")
	ErrRegistrationNotFound = errors.New("pending registration not found")
	ErrRegistrationExpired  = errors.New("pending registration expired")
)
