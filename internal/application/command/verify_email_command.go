package command

type VerifyEmailCommand struct {
	Email           string `json:"email"`
	VerificationOTP string `json:"verificationOTP"`
}
