package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"auth-service/internal/domain/entities"
)

// UserRepository is the credential store. Find methods return (nil, nil)
// when no user matches. Every mutation is a single atomic update on one
// user document so concurrent sign-in/refresh/verify cannot interleave a
// read-modify-write.
type UserRepository interface {
	// Create persists a new user. Returns entities.ErrDuplicate when the
	// email or username is already taken.
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)

	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// ConsumeOTP atomically marks the user verified and clears both OTP
	// fields, but only if otp matches and the stored expiry is strictly
	// after now. Returns the updated user, or (nil, nil) when no user
	// matched the condition.
	ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*entities.User, error)

	// SetOTP overwrites the verification code and its expiry.
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error

	// UpdateRefreshToken overwrites the stored refresh token. An empty
	// token clears it (sign-out).
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error
}
