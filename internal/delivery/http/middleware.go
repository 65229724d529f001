package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"auth-service/internal/domain/repositories"
	"auth-service/internal/infrastructure"
)

type AuthMiddleware struct {
	jwtService *infrastructure.JWTService
	userRepo   repositories.UserRepository
}

func NewAuthMiddleware(jwtService *infrastructure.JWTService, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, userRepo: userRepo}
}

// Protect verifies the access token from the cookie or bearer header and
// attaches the user (minus secrets) to the request context.
func (m *AuthMiddleware) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c, accessTokenCookie)
		if token == "" {
			return ErrorResponse(c, http.StatusUnauthorized, "Not authorized, no token", nil)
		}

		userID, err := m.jwtService.VerifyAccessToken(token)
		if err != nil {
			return ErrorResponse(c, http.StatusUnauthorized, "Not authorized, Invalid token", nil)
		}

		id, err := uuid.Parse(userID)
		if err != nil {
			return ErrorResponse(c, http.StatusUnauthorized, "Not authorized, Invalid token", nil)
		}

		user, err := m.userRepo.FindById(c.Request().Context(), id)
		if err != nil || user == nil {
			return ErrorResponse(c, http.StatusUnauthorized, "Not authorized, Invalid token", nil)
		}

		user.Password = ""
		user.RefreshToken = ""
		c.Set("user", user)

		return next(c)
	}
}
