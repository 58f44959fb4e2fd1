package db

import (
	"context"
	"errors"
	"time"

	"github.com/Kotlang/leadsGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepositoryInterface interface {
	Save(ctx context.Context, user *models.UserModel) error
	FindOneByEmail(ctx context.Context, email string) (*models.UserModel, error)
	FindOneById(ctx context.Context, id string) (*models.UserModel, error)
}

type UserRepository struct {
	collection *mongo.Collection
}

func (u *UserRepository) Save(ctx context.Context, user *models.UserModel) error {
	user.Id()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := user.Validate(); err != nil {
		return err
	}

	_, err := u.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (u *UserRepository) FindOneByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	return u.findOne(ctx, bson.M{"email": email})
}

func (u *UserRepository) FindOneById(ctx context.Context, id string) (*models.UserModel, error) {
	return u.findOne(ctx, bson.M{"_id": id})
}

func (u *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.UserModel, error) {
	user := &models.UserModel{}
	err := u.collection.FindOne(ctx, filter).Decode(user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
