package command

import "auth-service/internal/application/common"

type SignInCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInCommandResult struct {
	User         *common.UserResult
	AccessToken  string
	RefreshToken string
}
