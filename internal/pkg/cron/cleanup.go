package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/auth"
)

// NewAuthCleanupJob purges expired OTP codes and unverified registrations.
func NewAuthCleanupJob(otpRepo auth.OTPRepository, pendingRepo auth.PendingRegistrationRepository) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := time.Now()

		otps, err := otpRepo.DeleteExpired(ctx, now)
		if err != nil {
			return err
		}

		pendings, err := pendingRepo.DeleteExpired(ctx, now)
		if err != nil {
			return err
		}

		if otps > 0 || pendings > 0 {
			slog.Info("Purged expired auth records", "otp_codes", otps, "pending_registrations", pendings)
		}
		return nil
	}
}
