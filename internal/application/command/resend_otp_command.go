package command

// IsPasswordReset is part of the contract surface but currently unused;
// clients already send it.
type ResendOTPCommand struct {
	Email           string `json:"email"`
	IsPasswordReset bool   `json:"isPasswordReset"`
}
