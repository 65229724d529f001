package mapper

import (
	"auth-service/internal/application/common"
	"auth-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:             user.Id,
		FullName:       user.FullName,
		Email:          user.Email,
		Username:       user.Username,
		Role:           user.Role,
		ProfilePicture: user.ProfilePicture,
		IsVerified:     user.IsVerified,
	}
}
