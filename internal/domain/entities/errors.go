package entities

import "errors"

// Error kinds shared across the service. Store adapters translate
// engine-specific failures into these so callers never inspect driver
// errors, and the HTTP layer maps them onto status codes.
var (
	ErrValidation         = errors.New("required fields are missing")
	ErrDuplicate          = errors.New("duplicate entry")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrOTPInvalid         = errors.New("invalid or expired OTP")
	ErrUnauthorized       = errors.New("not authorized")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)
