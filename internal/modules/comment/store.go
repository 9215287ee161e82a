package comment

import (
	"context"
	"errors"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound reports that no comment exists for the given id.
var ErrNotFound = errors.New("comment not found")

// Store is the persistence surface the comment service needs.
type Store interface {
	Insert(ctx context.Context, rec *models.CommentModel) error
	ByQuery(ctx context.Context, query string) ([]models.CommentModel, error)
	// ToggleLike atomically adds username to the comment's likers, or
	// removes it when already present. It reports the resulting state.
	ToggleLike(ctx context.Context, id primitive.ObjectID, username string) (liked bool, err error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore builds a Mongo-backed comment store.
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(models.CommentCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, rec *models.CommentModel) error {
	_, err := s.coll.InsertOne(ctx, rec)
	return err
}

func (s *mongoStore) ByQuery(ctx context.Context, query string) ([]models.CommentModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"query": query}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.CommentModel
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *mongoStore) ToggleLike(ctx context.Context, id primitive.ObjectID, username string) (bool, error) {
	// like path: only matches while username is absent, so the pair of
	// updates cannot double-apply under concurrent toggles
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "likers": bson.M{"$ne": username}},
		bson.M{"$addToSet": bson.M{"likers": username}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	res, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "likers": username},
		bson.M{"$pull": bson.M{"likers": username}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return false, nil
	}
	return false, ErrNotFound
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
