package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"auth-service/internal/config"
)

// NewRouter wires the HTTP surface: CORS with credentials for the frontend
// origin, panic recovery, and an error handler that keeps unknown routes
// and framework errors in the same envelope shape.
func NewRouter(cfg *config.Config, handler *Handler, authMiddleware *AuthMiddleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.HTTPErrorHandler = newHTTPErrorHandler(cfg)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "User service is running")
	})

	e.POST("/signup", handler.SignUp)
	e.POST("/signin", handler.SignIn)
	e.POST("/refresh-token", handler.RefreshToken)
	e.POST("/signout", handler.SignOut, authMiddleware.Protect)
	e.PUT("/verify-email", handler.VerifyEmail)
	e.POST("/resend-otp", handler.ResendOTP)
	e.GET("/me", handler.Me, authMiddleware.Protect)

	return e
}

func newHTTPErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		statusCode := http.StatusInternalServerError
		message := "Internal Server Error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			statusCode = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		var detail interface{}
		if statusCode == http.StatusInternalServerError && !cfg.IsProduction() {
			detail = err.Error()
		}

		_ = ErrorResponse(c, statusCode, message, detail)
	}
}
