package infrastructure

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auth-service/internal/config"
	"auth-service/internal/domain/entities"
)

// JWTService mints and verifies the access/refresh token pair. Both tokens
// are self-contained HS256 JWTs carrying the user id; refresh tokens are
// additionally checked against the stored value by the lifecycle manager,
// which is what makes them revocable.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type tokenClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// GenerateTokenPair issues a fresh access and refresh token for the user.
func (j *JWTService) GenerateTokenPair(userID string) (accessToken, refreshToken string, err error) {
	accessToken, err = sign(userID, j.accessSecret, j.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err = sign(userID, j.refreshSecret, j.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("signing refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (j *JWTService) VerifyAccessToken(token string) (string, error) {
	return verify(token, j.accessSecret)
}

func (j *JWTService) VerifyRefreshToken(token string) (string, error) {
	return verify(token, j.refreshSecret)
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserId: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps back-to-back rotations from minting an
			// identical token within the same second.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify decodes the token and returns the user id claim. Expiry maps to
// entities.ErrTokenExpired, every other failure to entities.ErrTokenInvalid.
func verify(token string, secret []byte) (string, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", entities.ErrTokenExpired
		}
		return "", entities.ErrTokenInvalid
	}
	if !parsed.Valid || claims.UserId == "" {
		return "", entities.ErrTokenInvalid
	}
	return claims.UserId, nil
}
