package interfaces

import (
	"context"

	"github.com/google/uuid"

	"auth-service/internal/application/command"
	"auth-service/internal/application/common"
)

type UserService interface {
	SignUp(ctx context.Context, signUpCommand *command.SignUpCommand) (*common.UserResult, error)
	VerifyEmail(ctx context.Context, verifyCommand *command.VerifyEmailCommand) (*common.UserResult, error)
	ResendOTP(ctx context.Context, resendCommand *command.ResendOTPCommand) error
	SignIn(ctx context.Context, signInCommand *command.SignInCommand) (*command.SignInCommandResult, error)
	RefreshToken(ctx context.Context, presentedToken string) (*command.RefreshTokenCommandResult, error)
	SignOut(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*common.UserResult, error)
}
