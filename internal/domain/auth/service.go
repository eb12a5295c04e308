package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	VerifyRegistration(ctx context.Context, req VerifyRegistrationRequest) (TokenResponse, string, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, string, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, string, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	VerifyReset(ctx context.Context, req VerifyResetRequest) (VerifyResetResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
