package gormstore

import (
	"time"

	"github.com/google/uuid"

	"auth-service/internal/domain/entities"
)

type UserModel struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	FullName              string `gorm:"not null"`
	Email                 string `gorm:"uniqueIndex;not null"`
	Username              string `gorm:"uniqueIndex;not null"`
	Password              string `gorm:"not null"`
	Role                  string `gorm:"default:user"`
	ProfilePicture        string
	IsVerified            bool `gorm:"default:false"`
	VerificationOTP       *string
	VerificationOTPExpiry *time.Time
	RefreshToken          *string
}

func (UserModel) TableName() string {
	return "users"
}

func fromEntity(user *entities.User) *UserModel {
	model := &UserModel{
		Id:                    user.Id,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
		FullName:              user.FullName,
		Email:                 user.Email,
		Username:              user.Username,
		Password:              user.Password,
		Role:                  user.Role,
		ProfilePicture:        user.ProfilePicture,
		IsVerified:            user.IsVerified,
		VerificationOTPExpiry: user.VerificationOTPExpiry,
	}
	if user.VerificationOTP != "" {
		otp := user.VerificationOTP
		model.VerificationOTP = &otp
	}
	if user.RefreshToken != "" {
		token := user.RefreshToken
		model.RefreshToken = &token
	}
	return model
}

func (m *UserModel) toEntity() *entities.User {
	user := &entities.User{
		Id:                    m.Id,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		FullName:              m.FullName,
		Email:                 m.Email,
		Username:              m.Username,
		Password:              m.Password,
		Role:                  m.Role,
		ProfilePicture:        m.ProfilePicture,
		IsVerified:            m.IsVerified,
		VerificationOTPExpiry: m.VerificationOTPExpiry,
	}
	if m.VerificationOTP != nil {
		user.VerificationOTP = *m.VerificationOTP
	}
	if m.RefreshToken != nil {
		user.RefreshToken = *m.RefreshToken
	}
	return user
}
