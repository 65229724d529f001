package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserStartsPendingVerification(t *testing.T) {
	expiry := time.Now().Add(2 * time.Minute)
	user := NewUser("Jane Doe", "jane@x.com", "janedoe42", "hashed", "123456", expiry)

	assert.False(t, user.IsVerified)
	assert.Equal(t, DefaultRole, user.Role)
	assert.Equal(t, "123456", user.VerificationOTP)
	require.NotNil(t, user.VerificationOTPExpiry)
	assert.Equal(t, expiry, *user.VerificationOTPExpiry)
	assert.Empty(t, user.RefreshToken)
}

func TestNewValidatedUser(t *testing.T) {
	valid := NewUser("Jane Doe", "jane@x.com", "janedoe42", "hashed", "123456", time.Now().Add(time.Minute))
	_, err := NewValidatedUser(valid)
	assert.NoError(t, err)

	cases := map[string]func(*User){
		"empty full name": func(u *User) { u.FullName = "" },
		"empty email":     func(u *User) { u.Email = "" },
		"empty username":  func(u *User) { u.Username = "" },
		"empty password":  func(u *User) { u.Password = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			user := NewUser("Jane Doe", "jane@x.com", "janedoe42", "hashed", "123456", time.Now().Add(time.Minute))
			mutate(user)
			_, err := NewValidatedUser(user)
			assert.Error(t, err)
		})
	}
}
