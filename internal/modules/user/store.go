package user

import (
	"context"
	"errors"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrEmailTaken reports a registration against an already-used email. The
// users collection carries a unique index on email, so the guarantee holds
// under concurrent registrations.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound reports a lookup miss.
var ErrUserNotFound = errors.New("user not found")

// Store is the persistence surface the user service needs.
type Store interface {
	Insert(ctx context.Context, rec *models.UserModel) error
	ByEmail(ctx context.Context, email string) (*models.UserModel, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore builds a Mongo-backed user store.
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(models.UserCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, rec *models.UserModel) error {
	_, err := s.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *mongoStore) ByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var rec models.UserModel
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
