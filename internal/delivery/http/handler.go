package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"auth-service/internal/application/command"
	"auth-service/internal/application/interfaces"
	"auth-service/internal/config"
	"auth-service/internal/domain/entities"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type Handler struct {
	userService interfaces.UserService
	cfg         *config.Config
}

func NewHandler(userService interfaces.UserService, cfg *config.Config) *Handler {
	return &Handler{userService: userService, cfg: cfg}
}

func (h *Handler) SignUp(c echo.Context) error {
	var signUpCommand command.SignUpCommand
	if err := c.Bind(&signUpCommand); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "Required fields are missing", nil)
	}

	result, err := h.userService.SignUp(c.Request().Context(), &signUpCommand)
	if err != nil {
		return h.handleError(c, err)
	}

	return SuccessResponse(c, http.StatusCreated,
		"User created successfully and verification code sent to email", result)
}

func (h *Handler) SignIn(c echo.Context) error {
	var signInCommand command.SignInCommand
	if err := c.Bind(&signInCommand); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "Required fields are missing", nil)
	}

	result, err := h.userService.SignIn(c.Request().Context(), &signInCommand)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return SuccessResponse(c, http.StatusOK, "Sign in successful", result.User)
}

func (h *Handler) RefreshToken(c echo.Context) error {
	presentedToken := tokenFromRequest(c, refreshTokenCookie)
	if presentedToken == "" {
		return ErrorResponse(c, http.StatusUnauthorized, "Refresh token is missing", nil)
	}

	result, err := h.userService.RefreshToken(c.Request().Context(), presentedToken)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)
	return SuccessResponse(c, http.StatusOK, "Token refreshed successfully", nil)
}

func (h *Handler) SignOut(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return ErrorResponse(c, http.StatusUnauthorized, "Not authorized", nil)
	}

	if err := h.userService.SignOut(c.Request().Context(), user.Id); err != nil {
		return h.handleError(c, err)
	}

	h.clearAuthCookies(c)
	return SuccessResponse(c, http.StatusOK, "Sign out successful", nil)
}

func (h *Handler) VerifyEmail(c echo.Context) error {
	var verifyCommand command.VerifyEmailCommand
	if err := c.Bind(&verifyCommand); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "Required fields are missing", nil)
	}

	result, err := h.userService.VerifyEmail(c.Request().Context(), &verifyCommand)
	if err != nil {
		return h.handleError(c, err)
	}

	return SuccessResponse(c, http.StatusOK, "Email verified successfully", result)
}

func (h *Handler) ResendOTP(c echo.Context) error {
	var resendCommand command.ResendOTPCommand
	if err := c.Bind(&resendCommand); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "Email is required", nil)
	}

	if err := h.userService.ResendOTP(c.Request().Context(), &resendCommand); err != nil {
		if errors.Is(err, entities.ErrValidation) {
			return ErrorResponse(c, http.StatusBadRequest, "Email is required", nil)
		}
		if errors.Is(err, entities.ErrNotFound) {
			return ErrorResponse(c, http.StatusNotFound, "email not found", nil)
		}
		return h.handleError(c, err)
	}

	return SuccessResponse(c, http.StatusOK, "OTP resent successfully", nil)
}

func (h *Handler) Me(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return ErrorResponse(c, http.StatusUnauthorized, "Not authorized", nil)
	}

	result, err := h.userService.GetProfile(c.Request().Context(), user.Id)
	if err != nil {
		return h.handleError(c, err)
	}

	return SuccessResponse(c, http.StatusOK, "Profile fetched successfully", result)
}

// handleError translates error kinds into the envelope. Unexpected errors
// become a 500 whose detail is exposed only outside production.
func (h *Handler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return ErrorResponse(c, http.StatusBadRequest, "Required fields are missing", nil)
	case errors.Is(err, entities.ErrDuplicate):
		return ErrorResponse(c, http.StatusBadRequest, "Email already registered", nil)
	case errors.Is(err, entities.ErrInvalidCredentials):
		return ErrorResponse(c, http.StatusBadRequest, "Invalid email or password", nil)
	case errors.Is(err, entities.ErrOTPInvalid):
		return ErrorResponse(c, http.StatusBadRequest, "Invalid or expired OTP", nil)
	case errors.Is(err, entities.ErrAlreadyVerified):
		return ErrorResponse(c, http.StatusBadRequest, "Email already verified", nil)
	case errors.Is(err, entities.ErrNotFound):
		return ErrorResponse(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, entities.ErrTokenExpired):
		return ErrorResponse(c, http.StatusForbidden, "Refresh token expired, please sign in again", nil)
	case errors.Is(err, entities.ErrTokenInvalid):
		return ErrorResponse(c, http.StatusUnauthorized, "Invalid token", nil)
	case errors.Is(err, entities.ErrUnauthorized):
		return ErrorResponse(c, http.StatusUnauthorized, "Not authorized", nil)
	}

	log.Printf("Unhandled error on %s: %v", c.Request().RequestURI, err)
	var detail interface{}
	if !h.cfg.IsProduction() {
		detail = err.Error()
	}
	return ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", detail)
}

func (h *Handler) setAuthCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(h.authCookie(accessTokenCookie, accessToken, h.cfg.AccessTokenTTL))
	c.SetCookie(h.authCookie(refreshTokenCookie, refreshToken, h.cfg.RefreshTokenTTL))
}

// clearAuthCookies overwrites both cookies with an immediate expiry.
func (h *Handler) clearAuthCookies(c echo.Context) {
	access := h.authCookie(accessTokenCookie, "", 0)
	access.MaxAge = -1
	refresh := h.authCookie(refreshTokenCookie, "", 0)
	refresh.MaxAge = -1
	c.SetCookie(access)
	c.SetCookie(refresh)
}

func (h *Handler) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}

// tokenFromRequest reads the named cookie first, then the Authorization
// bearer header.
func tokenFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return after
	}
	return ""
}

func currentUser(c echo.Context) *entities.User {
	user, _ := c.Get("user").(*entities.User)
	return user
}
