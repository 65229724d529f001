package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "user"

// User is the sole persistent entity. Password always holds the bcrypt hash
// once the user has been constructed; plaintext never reaches the store.
// The OTP fields are set together while the account is unverified and
// cleared together on verification, never independently.
type User struct {
	Id                    uuid.UUID  `bson:"_id" json:"id"`
	CreatedAt             time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt             time.Time  `bson:"updatedAt" json:"updated_at"`
	FullName              string     `bson:"fullName" json:"full_name"`
	Email                 string     `bson:"email" json:"email"`
	Username              string     `bson:"username" json:"username"`
	Password              string     `bson:"password" json:"-"`
	Role                  string     `bson:"role" json:"role"`
	ProfilePicture        string     `bson:"profilePicture,omitempty" json:"profile_picture"`
	IsVerified            bool       `bson:"isVerified" json:"is_verified"`
	VerificationOTP       string     `bson:"verificationOTP,omitempty" json:"-"`
	VerificationOTPExpiry *time.Time `bson:"verificationOTPExpiry,omitempty" json:"-"`
	RefreshToken          string     `bson:"refreshToken,omitempty" json:"-"`
}

// NewUser builds an unverified user in PendingVerification state. The
// password must already be hashed.
func NewUser(fullName, email, username, hashedPassword, otp string, otpExpiry time.Time) *User {
	now := time.Now()
	return &User{
		Id:                    uuid.New(),
		CreatedAt:             now,
		UpdatedAt:             now,
		FullName:              fullName,
		Email:                 email,
		Username:              username,
		Password:              hashedPassword,
		Role:                  DefaultRole,
		IsVerified:            false,
		VerificationOTP:       otp,
		VerificationOTPExpiry: &otpExpiry,
	}
}

func (u *User) validate() error {
	if u.FullName == "" {
		return errors.New("full name must not be empty")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if u.Username == "" {
		return errors.New("username must not be empty")
	}
	if u.Password == "" {
		return errors.New("password must not be empty")
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}
