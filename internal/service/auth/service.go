package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/epayroll/payroll-backend-go/internal/domain/auth"
	"github.com/epayroll/payroll-backend-go/internal/domain/employee"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
	"github.com/epayroll/payroll-backend-go/internal/pkg/email"
	"github.com/epayroll/payroll-backend-go/internal/pkg/jwt"
	"github.com/epayroll/payroll-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpExpiry                 = 10 * time.Minute
	pendingRegistrationExpiry = 15 * time.Minute
)

type AuthServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	otpRepo      auth.OTPRepository
	pendingRepo  auth.PendingRegistrationRepository
	jwtService   jwt.Service
	emailService email.EmailService
}

func NewAuthService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	otpRepo auth.OTPRepository,
	pendingRepo auth.PendingRegistrationRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		otpRepo:      otpRepo,
		pendingRepo:  pendingRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	emailAddr := strings.ToLower(req.Email)

	_, err := s.employeeRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return auth.RegisterResponse{}, employee.ErrEmailExists
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := uuid.NewV7()
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to generate registration token: %w", err)
	}

	pending := auth.PendingRegistration{
		Token:        token.String(),
		Name:         req.Name,
		Email:        emailAddr,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		ExpiresAt:    time.Now().Add(pendingRegistrationExpiry),
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return auth.RegisterResponse{}, err
	}

	if err := s.issueOTP(ctx, emailAddr, req.Name, auth.PurposeRegistration); err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		RegistrationToken: pending.Token,
		ExpiresAt:         pending.ExpiresAt.Unix(),
	}, nil
}

func (s *AuthServiceImpl) VerifyRegistration(ctx context.Context, req auth.VerifyRegistrationRequest) (auth.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, "", err
	}

	pending, err := s.pendingRepo.GetByToken(ctx, req.RegistrationToken)
	if err != nil {
		return auth.TokenResponse{}, "", err
	}
	if pending.Expired(time.Now()) {
		return auth.TokenResponse{}, "", auth.ErrRegistrationExpired
	}

	if err := s.checkOTP(ctx, pending.Email, auth.PurposeRegistration, req.Code); err != nil {
		return auth.TokenResponse{}, "", err
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		id, err := s.employeeRepo.NextID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to allocate employee ID: %w", err)
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			ID:           id,
			Name:         pending.Name,
			Email:        pending.Email,
			PasswordHash: pending.PasswordHash,
			Phone:        pending.Phone,
			JoiningDate:  time.Now(),
			Role:         employee.RoleEmployee,
			Status:       employee.StatusActive,
		})
		if err != nil {
			return err
		}

		if err := s.pendingRepo.Delete(txCtx, pending.Token); err != nil {
			return err
		}
		return s.otpRepo.DeleteForEmail(txCtx, pending.Email, auth.PurposeRegistration)
	})
	if err != nil {
		return auth.TokenResponse{}, "", err
	}

	if err := s.emailService.SendWelcome(created.Email, created.Name, created.ID); err != nil {
		slog.Warn("Failed to send welcome email", "employee_id", created.ID, "error", err)
	}

	return s.issueTokens(created)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, "", err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
	}

	if !emp.IsActive() {
		return auth.TokenResponse{}, "", auth.ErrAccountInactive
	}

	return s.issueTokens(emp)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, string, error) {
	if refreshToken == "" {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}
	if time.Now().After(token.Expiration()) {
		return auth.TokenResponse{}, "", auth.ErrTokenExpired
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}
	employeeID, ok := idVal.(string)
	if !ok {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}
	if !emp.IsActive() {
		return auth.TokenResponse{}, "", auth.ErrAccountInactive
	}

	// Rotate: the presented token is spent regardless of what happens next.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(emp)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emailAddr := strings.ToLower(req.Email)

	emp, err := s.employeeRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Whether the address is registered is not disclosed.
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}

	return s.issueOTP(ctx, emailAddr, emp.Name, auth.PurposePasswordReset)
}

func (s *AuthServiceImpl) VerifyReset(ctx context.Context, req auth.VerifyResetRequest) (auth.VerifyResetResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.VerifyResetResponse{}, err
	}

	emailAddr := strings.ToLower(req.Email)

	if err := s.checkOTP(ctx, emailAddr, auth.PurposePasswordReset, req.Code); err != nil {
		return auth.VerifyResetResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return auth.VerifyResetResponse{}, err
	}

	resetToken, expiresAt, err := s.jwtService.GenerateResetToken(emp.ID)
	if err != nil {
		return auth.VerifyResetResponse{}, fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.otpRepo.DeleteForEmail(ctx, emailAddr, auth.PurposePasswordReset); err != nil {
		slog.Error("Failed to clean up verified codes", "email", emailAddr, "error", err)
	}

	return auth.VerifyResetResponse{
		ResetToken: resetToken,
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	employeeID, err := s.jwtService.ValidateResetToken(req.ResetToken)
	if err != nil {
		return auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.UpdatePassword(ctx, emp.ID, string(hashed)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordChanged(emp.Email, emp.Name); err != nil {
		slog.Warn("Failed to send password changed email", "employee_id", emp.ID, "error", err)
	}

	return nil
}

// issueOTP replaces any outstanding code for the email and purpose with a
// fresh one and mails it out.
func (s *AuthServiceImpl) issueOTP(ctx context.Context, emailAddr string, name string, purpose auth.OTPPurpose) error {
	if err := s.otpRepo.DeleteForEmail(ctx, emailAddr, purpose); err != nil {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	otp, err := s.otpRepo.Create(ctx, auth.OTPVerification{
		Email:     emailAddr,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpExpiry),
	})
	if err != nil {
		return err
	}

	if err := s.emailService.SendOTP(emailAddr, name, code, string(purpose), otp.ExpiresAt.Format("15:04 MST")); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	return nil
}

func (s *AuthServiceImpl) checkOTP(ctx context.Context, emailAddr string, purpose auth.OTPPurpose, code string) error {
	otp, err := s.otpRepo.GetLatest(ctx, emailAddr, purpose)
	if err != nil {
		return err
	}
	if otp.Expired(time.Now()) {
		return auth.ErrOTPExpired
	}
	if otp.Code != code {
		return auth.ErrOTPMismatch
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, string, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   accessExpiresAt,
		EmployeeID:  emp.ID,
		Role:        string(emp.Role),
	}, refreshToken, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
