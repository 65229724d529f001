package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"auth-service/internal/application/command"
	"auth-service/internal/application/common"
	"auth-service/internal/application/interfaces"
	"auth-service/internal/application/mapper"
	"auth-service/internal/domain/entities"
	"auth-service/internal/domain/repositories"
	"auth-service/internal/infrastructure"
)

const maxUsernameAttempts = 5

// UserService drives the credential and session lifecycle: sign-up with
// OTP email verification, sign-in, refresh token rotation, sign-out.
type UserService struct {
	userRepo        repositories.UserRepository
	passwordService *infrastructure.PasswordService
	otpService      *infrastructure.OTPService
	jwtService      *infrastructure.JWTService
	redisService    *infrastructure.RedisService
	mailer          infrastructure.Mailer
	profileCacheTTL time.Duration
}

func NewUserService(
	userRepo repositories.UserRepository,
	passwordService *infrastructure.PasswordService,
	otpService *infrastructure.OTPService,
	jwtService *infrastructure.JWTService,
	redisService *infrastructure.RedisService,
	mailer infrastructure.Mailer,
	profileCacheTTL time.Duration,
) interfaces.UserService {
	return &UserService{
		userRepo:        userRepo,
		passwordService: passwordService,
		otpService:      otpService,
		jwtService:      jwtService,
		redisService:    redisService,
		mailer:          mailer,
		profileCacheTTL: profileCacheTTL,
	}
}

func (s *UserService) SignUp(ctx context.Context, signUpCommand *command.SignUpCommand) (*common.UserResult, error) {
	email := normalizeEmail(signUpCommand.Email)
	if signUpCommand.FullName == "" || email == "" || signUpCommand.Password == "" {
		return nil, entities.ErrValidation
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, entities.ErrDuplicate
	}

	username, err := s.generateUsername(ctx, signUpCommand.FullName)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordService.Hash(signUpCommand.Password)
	if err != nil {
		return nil, err
	}

	otp, otpExpiry := s.otpService.Generate()

	newUser := entities.NewUser(signUpCommand.FullName, email, username, hashedPassword, otp, otpExpiry)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	infrastructure.SendAsync("verification code", func() error {
		return s.mailer.SendVerificationCode(context.Background(), email, otp)
	})

	return mapper.NewUserResultFromEntity(createdUser), nil
}

func (s *UserService) VerifyEmail(ctx context.Context, verifyCommand *command.VerifyEmailCommand) (*common.UserResult, error) {
	email := normalizeEmail(verifyCommand.Email)
	if email == "" || verifyCommand.VerificationOTP == "" {
		return nil, entities.ErrValidation
	}

	// Single conditional update: match email + code + unexpired, set
	// verified, clear both OTP fields. A second verify with the same code
	// finds no match.
	user, err := s.userRepo.ConsumeOTP(ctx, email, verifyCommand.VerificationOTP, time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.ErrOTPInvalid
	}

	s.invalidateProfile(ctx, user.Id)

	fullName := user.FullName
	infrastructure.SendAsync("welcome email", func() error {
		return s.mailer.SendWelcomeEmail(context.Background(), email, fullName)
	})

	return mapper.NewUserResultFromEntity(user), nil
}

func (s *UserService) ResendOTP(ctx context.Context, resendCommand *command.ResendOTPCommand) error {
	email := normalizeEmail(resendCommand.Email)
	if email == "" {
		return entities.ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return entities.ErrNotFound
	}
	if user.IsVerified {
		return entities.ErrAlreadyVerified
	}

	otp, otpExpiry := s.otpService.Generate()
	if err := s.userRepo.SetOTP(ctx, user.Id, otp, otpExpiry); err != nil {
		return err
	}

	infrastructure.SendAsync("verification code", func() error {
		return s.mailer.SendVerificationCode(context.Background(), email, otp)
	})

	return nil
}

func (s *UserService) SignIn(ctx context.Context, signInCommand *command.SignInCommand) (*command.SignInCommandResult, error) {
	email := normalizeEmail(signInCommand.Email)
	if email == "" || signInCommand.Password == "" {
		return nil, entities.ErrValidation
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.ErrInvalidCredentials
	}
	if !s.passwordService.Verify(signInCommand.Password, user.Password) {
		return nil, entities.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user.Id.String())
	if err != nil {
		return nil, err
	}

	// Overwriting the stored token invalidates any prior session: one live
	// refresh credential per account.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.Id, refreshToken); err != nil {
		return nil, err
	}

	return &command.SignInCommandResult{
		User:         mapper.NewUserResultFromEntity(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) RefreshToken(ctx context.Context, presentedToken string) (*command.RefreshTokenCommandResult, error) {
	if presentedToken == "" {
		return nil, entities.ErrUnauthorized
	}

	userID, err := s.jwtService.VerifyRefreshToken(presentedToken)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, entities.ErrTokenInvalid
	}

	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.ErrUnauthorized
	}

	// The stored-token equality check is what revokes rotated-out and
	// signed-out refresh tokens despite the JWT itself still verifying.
	if user.RefreshToken != presentedToken {
		return nil, entities.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user.Id.String())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.Id, refreshToken); err != nil {
		return nil, err
	}

	return &command.RefreshTokenCommandResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) SignOut(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return entities.ErrNotFound
	}

	return s.userRepo.UpdateRefreshToken(ctx, userID, "")
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*common.UserResult, error) {
	cachedUser, err := s.redisService.GetProfile(ctx, userID.String())
	if err == nil && cachedUser != nil {
		return mapper.NewUserResultFromEntity(cachedUser), nil
	}

	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.ErrNotFound
	}

	if err := s.redisService.SetProfile(ctx, userID.String(), user, s.profileCacheTTL); err != nil {
		log.Printf("Failed to cache user profile: %v", err)
	}

	return mapper.NewUserResultFromEntity(user), nil
}

func (s *UserService) invalidateProfile(ctx context.Context, userID uuid.UUID) {
	if err := s.redisService.DeleteProfile(ctx, userID.String()); err != nil {
		log.Printf("Failed to invalidate cached profile: %v", err)
	}
}

// normalizeEmail lower-cases and trims the address so case variants map to
// one account, on storage and on every lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateUsername derives "first two name tokens lower-cased + random
// suffix in [10,1000)" and retries a bounded number of times on collision,
// then once more with a 6-digit suffix before giving up.
func (s *UserService) generateUsername(ctx context.Context, fullName string) (string, error) {
	nameParts := strings.Fields(fullName)
	if len(nameParts) == 0 {
		return "", entities.ErrValidation
	}
	base := strings.ToLower(nameParts[0])
	if len(nameParts) > 1 {
		base += strings.ToLower(nameParts[1])
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := base + strconv.Itoa(randomInt(10, 1000))
		existing, err := s.userRepo.FindByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	candidate := base + strconv.Itoa(randomInt(100000, 1000000))
	existing, err := s.userRepo.FindByUsername(ctx, candidate)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("generating username for %q: %w", fullName, entities.ErrDuplicate)
}

// randomInt returns a uniform value in [min, max).
func randomInt(min, max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	if err != nil {
		return min + int(time.Now().UnixNano())%(max-min)
	}
	return min + int(n.Int64())
}
