package command

type RefreshTokenCommandResult struct {
	AccessToken  string
	RefreshToken string
}
