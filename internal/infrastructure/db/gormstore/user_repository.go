package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auth-service/internal/domain/entities"
	"auth-service/internal/domain/repositories"
)

// UserRepository is the relational credential store adapter. Behavior is
// identical to the mongo adapter: find methods return (nil, nil) on miss,
// mutations are single UPDATE statements.
type UserRepository struct {
	db *gorm.DB
}

// OpenPostgres opens the production relational store and migrates the
// users table.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&UserModel{}); err != nil {
		return nil, err
	}
	return db, nil
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	model := fromEntity(user.GetUser())
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, entities.ErrDuplicate
		}
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*entities.User, error) {
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ? AND verification_otp = ? AND verification_otp_expiry > ?", email, otp, now).
		Updates(map[string]interface{}{
			"is_verified":             true,
			"verification_otp":        nil,
			"verification_otp_expiry": nil,
			"updated_at":              now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByEmail(ctx, email)
}

func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error {
	return r.updateById(ctx, id, map[string]interface{}{
		"verification_otp":        otp,
		"verification_otp_expiry": expiry,
		"updated_at":              time.Now(),
	})
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	values := map[string]interface{}{
		"refresh_token": token,
		"updated_at":    time.Now(),
	}
	if token == "" {
		values["refresh_token"] = nil
	}
	return r.updateById(ctx, id, values)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *UserRepository) updateById(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
