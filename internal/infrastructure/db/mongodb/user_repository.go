package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"auth-service/internal/domain/entities"
	"auth-service/internal/domain/repositories"
)

// userDocument is the persisted shape. The id is stored as a uuid string so
// documents stay readable in the shell.
type userDocument struct {
	Id                    string     `bson:"_id"`
	CreatedAt             time.Time  `bson:"createdAt"`
	UpdatedAt             time.Time  `bson:"updatedAt"`
	FullName              string     `bson:"fullName"`
	Email                 string     `bson:"email"`
	Username              string     `bson:"username"`
	Password              string     `bson:"password"`
	Role                  string     `bson:"role"`
	ProfilePicture        string     `bson:"profilePicture,omitempty"`
	IsVerified            bool       `bson:"isVerified"`
	VerificationOTP       string     `bson:"verificationOTP,omitempty"`
	VerificationOTPExpiry *time.Time `bson:"verificationOTPExpiry,omitempty"`
	RefreshToken          string     `bson:"refreshToken,omitempty"`
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) (repositories.UserRepository, error) {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ensureIndexes(ctx, collection); err != nil {
		return nil, fmt.Errorf("creating user indexes: %w", err)
	}

	return &UserRepository{collection: collection}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	doc := fromEntity(user.GetUser())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, entities.ErrDuplicate
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// ConsumeOTP is a single conditional update: match on email + code +
// unexpired, set verified, unset both OTP fields. A concurrent duplicate
// call loses the match and gets (nil, nil).
func (r *UserRepository) ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*entities.User, error) {
	filter := bson.M{
		"email":                 email,
		"verificationOTP":       otp,
		"verificationOTPExpiry": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": now},
		"$unset": bson.M{"verificationOTP": "", "verificationOTPExpiry": ""},
	}

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error {
	update := bson.M{"$set": bson.M{
		"verificationOTP":       otp,
		"verificationOTPExpiry": expiry,
		"updatedAt":             time.Now(),
	}}
	return r.updateById(ctx, id, update)
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	var update bson.M
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"refreshToken": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	} else {
		update = bson.M{"$set": bson.M{"refreshToken": token, "updatedAt": time.Now()}}
	}
	return r.updateById(ctx, id, update)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *UserRepository) updateById(ctx context.Context, id uuid.UUID, update bson.M) error {
	result, err := r.collection.UpdateByID(ctx, id.String(), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func fromEntity(user *entities.User) *userDocument {
	return &userDocument{
		Id:                    user.Id.String(),
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
		FullName:              user.FullName,
		Email:                 user.Email,
		Username:              user.Username,
		Password:              user.Password,
		Role:                  user.Role,
		ProfilePicture:        user.ProfilePicture,
		IsVerified:            user.IsVerified,
		VerificationOTP:       user.VerificationOTP,
		VerificationOTPExpiry: user.VerificationOTPExpiry,
		RefreshToken:          user.RefreshToken,
	}
}

func (d *userDocument) toEntity() (*entities.User, error) {
	id, err := uuid.Parse(d.Id)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", d.Id, err)
	}
	return &entities.User{
		Id:                    id,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		FullName:              d.FullName,
		Email:                 d.Email,
		Username:              d.Username,
		Password:              d.Password,
		Role:                  d.Role,
		ProfilePicture:        d.ProfilePicture,
		IsVerified:            d.IsVerified,
		VerificationOTP:       d.VerificationOTP,
		VerificationOTPExpiry: d.VerificationOTPExpiry,
		RefreshToken:          d.RefreshToken,
	}, nil
}
