package auth

import "time"

// OTPPurpose enum
type OTPPurpose string

const (
	PurposeRegistration  OTPPurpose = "registration"
	PurposePasswordReset OTPPurpose = "password_reset"
)

// OTPVerification - Single-use 6-digit code bound to an email and purpose
type OTPVerification struct {
	ID        int64
	Email     string
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (o OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// PendingRegistration - Server-side state for an unverified signup, keyed
// by an opaque correlation token. Purged on verification or by the cleanup
// job after expiry.
type PendingRegistration struct {
	Token        string
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (p PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
