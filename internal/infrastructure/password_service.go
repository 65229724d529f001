package infrastructure

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// PasswordService salts and hashes passwords with bcrypt. Two hashes of the
// same plaintext differ (fresh salt per call) but both verify.
type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: bcryptCost}
}

func (p *PasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is
// a boolean result, not an error.
func (p *PasswordService) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
