package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auth-service/internal/application/services"
	"auth-service/internal/config"
	"auth-service/internal/domain/repositories"
	"auth-service/internal/infrastructure"
	"auth-service/internal/infrastructure/db/gormstore"
)

type silentMailer struct{}

func (silentMailer) SendVerificationCode(ctx context.Context, recipientEmail, otp string) error {
	return nil
}

func (silentMailer) SendWelcomeEmail(ctx context.Context, recipientEmail, fullName string) error {
	return nil
}

func newTestServer(t *testing.T) (*echo.Echo, repositories.UserRepository) {
	t.Helper()

	cfg := &config.Config{
		Environment:        "test",
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    time.Hour,
		OTPTTL:             2 * time.Minute,
		FrontendURL:        "http://localhost:5173",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gormstore.UserModel{}))

	repo := gormstore.NewUserRepository(db)
	jwtService := infrastructure.NewJWTService(cfg)

	userService := services.NewUserService(
		repo,
		infrastructure.NewPasswordService(),
		infrastructure.NewOTPService(cfg.OTPTTL),
		jwtService,
		infrastructure.NewRedisService(&config.Config{}),
		silentMailer{},
		time.Hour,
	)

	handler := NewHandler(userService, cfg)
	authMiddleware := NewAuthMiddleware(jwtService, repo)
	return NewRouter(cfg, handler, authMiddleware), repo
}

type envelope struct {
	Success   bool                   `json:"success"`
	Status    int                    `json:"status"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	Error     interface{}            `json:"error"`
	Timestamp string                 `json:"timestamp"`
	Path      string                 `json:"path"`
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

const signUpBody = `{"fullName":"Jane Doe","email":"jane@x.com","password":"secret123"}`
const signInBody = `{"email":"jane@x.com","password":"secret123"}`

func signIn(t *testing.T, e *echo.Echo) (access, refresh *http.Cookie) {
	t.Helper()

	rec, _ := doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doRequest(t, e, http.MethodPost, "/signin", signInBody)
	require.Equal(t, http.StatusOK, rec.Code)

	access = cookieByName(rec, "accessToken")
	refresh = cookieByName(rec, "refreshToken")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	return access, refresh
}

func TestSignUpEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodPost, "/signup", signUpBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Contains(t, env.Message, "verification code sent")
	assert.Equal(t, "/signup", env.Path)
	assert.NotEmpty(t, env.Timestamp)

	assert.Equal(t, "jane@x.com", env.Data["email"])
	assert.Equal(t, false, env.Data["isVerified"])
	assert.Regexp(t, `^janedoe\d{2,6}$`, env.Data["username"])

	// The profile never leaks credentials or OTP state.
	for _, key := range []string{"password", "verificationOTP", "refreshToken"} {
		assert.NotContains(t, env.Data, key)
	}
}

func TestSignUpEndpointValidationAndConflict(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodPost, "/signup", `{"email":"jane@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Required fields are missing", env.Message)

	rec, _ = doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", env.Message)
}

func TestSignInEndpointSetsCookies(t *testing.T) {
	e, repo := newTestServer(t)

	rec, _ := doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doRequest(t, e, http.MethodPost, "/signin", signInBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sign in successful", env.Message)

	access := cookieByName(rec, "accessToken")
	refresh := cookieByName(rec, "refreshToken")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	for _, cookie := range []*http.Cookie{access, refresh} {
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.False(t, cookie.Secure, "secure only in production")
		assert.NotEmpty(t, cookie.Value)
	}

	// The refresh cookie matches the stored session credential.
	user, err := repo.FindByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, refresh.Value, user.RefreshToken)

	rec, env = doRequest(t, e, http.MethodPost, "/signin", `{"email":"jane@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestVerifyEmailEndpoint(t *testing.T) {
	e, repo := newTestServer(t)
	ctx := context.Background()

	rec, _ := doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doRequest(t, e, http.MethodPut, "/verify-email",
		`{"email":"jane@x.com","verificationOTP":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", env.Message)

	user, err := repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)

	body := fmt.Sprintf(`{"email":"jane@x.com","verificationOTP":"%s"}`, user.VerificationOTP)
	rec, env = doRequest(t, e, http.MethodPut, "/verify-email", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email verified successfully", env.Message)
	assert.Equal(t, true, env.Data["isVerified"])

	// Replay of a consumed code.
	rec, _ = doRequest(t, e, http.MethodPut, "/verify-email", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResendOTPEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodPost, "/resend-otp", `{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "email not found", env.Message)

	rec, _ = doRequest(t, e, http.MethodPost, "/signup", signUpBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doRequest(t, e, http.MethodPost, "/resend-otp", `{"email":"jane@x.com","isPasswordReset":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP resent successfully", env.Message)
}

func TestRefreshTokenEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	_, refresh := signIn(t, e)

	rec, env := doRequest(t, e, http.MethodPost, "/refresh-token", "", refresh)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Token refreshed successfully", env.Message)

	rotated := cookieByName(rec, "refreshToken")
	require.NotNil(t, rotated)
	assert.NotEqual(t, refresh.Value, rotated.Value)

	// The rotated-out cookie is rejected on replay.
	rec, env = doRequest(t, e, http.MethodPost, "/refresh-token", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized", env.Message)

	rec, _ = doRequest(t, e, http.MethodPost, "/refresh-token", "", rotated)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshTokenEndpointRejections(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodPost, "/refresh-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Refresh token is missing", env.Message)

	garbage := &http.Cookie{Name: "refreshToken", Value: "not-a-jwt"}
	rec, env = doRequest(t, e, http.MethodPost, "/refresh-token", "", garbage)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", env.Message)
}

func TestRefreshTokenFromBearerHeader(t *testing.T) {
	e, _ := newTestServer(t)

	_, refresh := signIn(t, e)

	req := httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(""))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+refresh.Value)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignOutEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	access, refresh := signIn(t, e)

	rec, env := doRequest(t, e, http.MethodPost, "/signout", "", access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sign out successful", env.Message)

	// Both cookies are overwritten with an immediate expiry.
	for _, name := range []string{"accessToken", "refreshToken"} {
		cleared := cookieByName(rec, name)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	}

	// The stored refresh credential is gone.
	rec, _ = doRequest(t, e, http.MethodPost, "/refresh-token", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignOutRequiresAuth(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodPost, "/signout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", env.Message)

	garbage := &http.Cookie{Name: "accessToken", Value: "not-a-jwt"}
	rec, env = doRequest(t, e, http.MethodPost, "/signout", "", garbage)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, Invalid token", env.Message)
}

func TestMeEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	access, _ := signIn(t, e)

	rec, env := doRequest(t, e, http.MethodGet, "/me", "", access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@x.com", env.Data["email"])

	rec, _ = doRequest(t, e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doRequest(t, e, http.MethodGet, "/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "/does-not-exist", env.Path)
}
