package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/auth"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type otpRepository struct {
	db *database.DB
}

func NewOTPRepository(db *database.DB) auth.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp auth.OTPVerification) (auth.OTPVerification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO otp_verifications (email, code, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, code, purpose, expires_at, created_at
	`

	var created auth.OTPVerification
	err := q.QueryRow(ctx, query, otp.Email, otp.Code, otp.Purpose, otp.ExpiresAt).Scan(
		&created.ID, &created.Email, &created.Code, &created.Purpose, &created.ExpiresAt, &created.CreatedAt,
	)
	if err != nil {
		return auth.OTPVerification{}, fmt.Errorf("failed to create otp: %w", err)
	}

	return created, nil
}

func (r *otpRepository) GetLatest(ctx context.Context, email string, purpose auth.OTPPurpose) (auth.OTPVerification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, code, purpose, expires_at, created_at
		FROM otp_verifications
		WHERE LOWER(email) = LOWER($1) AND purpose = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp auth.OTPVerification
	err := q.QueryRow(ctx, query, email, purpose).Scan(
		&otp.ID, &otp.Email, &otp.Code, &otp.Purpose, &otp.ExpiresAt, &otp.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.OTPVerification{}, auth.ErrOTPNotFound
		}
		return auth.OTPVerification{}, fmt.Errorf("failed to get otp: %w", err)
	}

	return otp, nil
}

func (r *otpRepository) DeleteForEmail(ctx context.Context, email string, purpose auth.OTPPurpose) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM otp_verifications WHERE LOWER(email) = LOWER($1) AND purpose = $2`,
		email, purpose,
	)
	if err != nil {
		return fmt.Errorf("failed to delete otps: %w", err)
	}

	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM otp_verifications WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", err)
	}

	return tag.RowsAffected(), nil
}

type pendingRegistrationRepository struct {
	db *database.DB
}

func NewPendingRegistrationRepository(db *database.DB) auth.PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

func (r *pendingRegistrationRepository) Create(ctx context.Context, pending auth.PendingRegistration) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO pending_registrations (token, name, email, password_hash, phone, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, pending.Token, pending.Name, pending.Email, pending.PasswordHash, pending.Phone, pending.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create pending registration: %w", err)
	}

	return nil
}

func (r *pendingRegistrationRepository) GetByToken(ctx context.Context, token string) (auth.PendingRegistration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT token, name, email, password_hash, phone, expires_at, created_at
		FROM pending_registrations
		WHERE token = $1
	`

	var pending auth.PendingRegistration
	err := q.QueryRow(ctx, query, token).Scan(
		&pending.Token, &pending.Name, &pending.Email, &pending.PasswordHash,
		&pending.Phone, &pending.ExpiresAt, &pending.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.PendingRegistration{}, auth.ErrRegistrationNotFound
		}
		return auth.PendingRegistration{}, fmt.Errorf("failed to get pending registration: %w", err)
	}

	return pending, nil
}

func (r *pendingRegistrationRepository) Delete(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM pending_registrations WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}

	return nil
}

func (r *pendingRegistrationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pending_registrations WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired pending registrations: %w", err)
	}

	return tag.RowsAffected(), nil
}
