package http

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape for every endpoint, success or
// failure.
type Envelope struct {
	Success   bool        `json:"success"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
}

func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	return c.JSON(statusCode, Envelope{
		Success:   true,
		Status:    statusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request().RequestURI,
	})
}

func ErrorResponse(c echo.Context, statusCode int, message string, errDetail interface{}) error {
	if errDetail == nil {
		errDetail = map[string]interface{}{}
	}
	return c.JSON(statusCode, Envelope{
		Success:   false,
		Status:    statusCode,
		Message:   message,
		Error:     errDetail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request().RequestURI,
	})
}
