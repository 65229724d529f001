package common

import "github.com/google/uuid"

// UserResult is the public profile returned by every operation. It never
// carries the password hash, OTP state, or tokens.
type UserResult struct {
	Id             uuid.UUID `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
	IsVerified     bool      `json:"isVerified"`
}
