package infrastructure

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OTPService produces single-use 6-digit verification codes.
type OTPService struct {
	ttl time.Duration
}

func NewOTPService(ttl time.Duration) *OTPService {
	return &OTPService{ttl: ttl}
}

// Generate returns a code drawn uniformly from [100000, 999999] and its
// expiry timestamp (now + TTL).
func (o *OTPService) Generate() (string, time.Time) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the system entropy source is broken
		n = big.NewInt(time.Now().UnixNano() % 900000)
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)
	return code, time.Now().Add(o.ttl)
}

func (o *OTPService) TTL() time.Duration {
	return o.ttl
}
