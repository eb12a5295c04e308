package auth

import (
	"context"
	"time"
)

// OTPRepository stores one-time verification codes.
type OTPRepository interface {
	Create(ctx context.Context, otp OTPVerification) (OTPVerification, error)
	GetLatest(ctx context.Context, email string, purpose OTPPurpose) (OTPVerification, error)

	// DeleteForEmail removes every code for the email and purpose, used
	// both on successful verification and before issuing a fresh code.
	DeleteForEmail(ctx context.Context, email string, purpose OTPPurpose) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PendingRegistrationRepository stores unverified signups.
type PendingRegistrationRepository interface {
	Create(ctx context.Context, pending PendingRegistration) error
	GetByToken(ctx context.Context, token string) (PendingRegistration, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
