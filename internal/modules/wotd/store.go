package wotd

import (
	"context"
	"errors"
	"fmt"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateDay reports that a record for the candidate's day key already
// exists. It is the storage layer's uniqueness constraint speaking, not an
// application-level check.
var ErrDuplicateDay = errors.New("wotd for day already exists")

// Store is the narrow persistence surface the service needs. Insert must
// fail with ErrDuplicateDay when a record with the same day key exists,
// atomically, so two concurrent callers can never both insert.
type Store interface {
	Insert(ctx context.Context, rec *models.WotdModel) error
	Latest(ctx context.Context) (*models.WotdModel, error)
	Archive(ctx context.Context, limit int64) ([]models.WotdModel, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore builds the MongoDB-backed store. The wotds collection must carry
// a unique index on dayKey (database.EnsureIndexes creates it).
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(models.WotdCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, rec *models.WotdModel) error {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateDay
		}
		return fmt.Errorf("insert wotd: %w", err)
	}
	return nil
}

func (s *mongoStore) Latest(ctx context.Context) (*models.WotdModel, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "dayKey", Value: -1},
		{Key: "_id", Value: -1},
	})
	var rec models.WotdModel
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest wotd: %w", err)
	}
	return &rec, nil
}

func (s *mongoStore) Archive(ctx context.Context, limit int64) ([]models.WotdModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "dayKey", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find wotd archive: %w", err)
	}
	defer cur.Close(ctx)

	var recs []models.WotdModel
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode wotd archive: %w", err)
	}
	return recs, nil
}
