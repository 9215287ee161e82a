package comment

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrEmptyComment rejects posts with no usable text or query.
var ErrEmptyComment = errors.New("comment text and query are required")

// TopsLimit bounds the most-liked list per query.
const TopsLimit = 3

// Service owns comment reads and writes for search queries.
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService builds the comment service.
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log.Named("comment")}
}

// Post persists a new comment authored by the authenticated user.
func (s *Service) Post(ctx context.Context, query, author, text string) (*models.CommentModel, error) {
	query = strings.TrimSpace(query)
	text = strings.TrimSpace(text)
	if query == "" || text == "" {
		return nil, ErrEmptyComment
	}

	rec := &models.CommentModel{
		ID:        primitive.NewObjectID(),
		Query:     query,
		Author:    author,
		Text:      text,
		Likers:    []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ForQuery returns all comments on a query, newest first.
func (s *Service) ForQuery(ctx context.Context, query string) ([]models.CommentModel, error) {
	recs, err := s.store.ByQuery(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.CommentModel{}
	}
	return recs, nil
}

// Tops returns the most-liked comments on a query, at most TopsLimit of
// them. Ties keep the newer comment first, matching ForQuery's order.
func (s *Service) Tops(ctx context.Context, query string) ([]models.CommentModel, error) {
	recs, err := s.ForQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return len(recs[i].Likers) > len(recs[j].Likers)
	})
	if len(recs) > TopsLimit {
		recs = recs[:TopsLimit]
	}
	return recs, nil
}

// ToggleLike flips the caller's like on a comment.
func (s *Service) ToggleLike(ctx context.Context, id primitive.ObjectID, username string) (bool, error) {
	return s.store.ToggleLike(ctx, id, username)
}

// Delete removes a comment by id.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}
