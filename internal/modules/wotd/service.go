package wotd

import (
	"context"
	"errors"
	"time"

	"github.com/carpediction/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Outcome is the result of an upsert attempt for a day key.
type Outcome string

const (
	Created          Outcome = "created"
	DuplicateSkipped Outcome = "duplicate_skipped"
	Failed           Outcome = "failed"
)

// Candidate is one record offered to the upsert gate.
type Candidate struct {
	Word   string
	Def    string
	DayKey time.Time
}

// Attempt is the outcome of one full scrape cycle. It is ephemeral; only
// the created record, if any, is persisted.
type Attempt struct {
	Outcome Outcome
	Word    string
	Err     error
}

// Service owns word-of-the-day ingestion and reads.
type Service struct {
	store   Store
	scraper *Scraper
	log     *zap.Logger
}

// NewService builds the wotd service. scraper may be nil when only the
// HTTP write path is used.
func NewService(store Store, scraper *Scraper, log *zap.Logger) *Service {
	return &Service{store: store, scraper: scraper, log: log.Named("wotd")}
}

// UpsertForDay persists the candidate unless a record for its day key
// already exists. The day-key uniqueness lives in the storage layer, so
// the guarantee holds across concurrent callers and across independent
// server processes sharing the database: exactly one of them creates the
// record, the rest see DuplicateSkipped.
func (s *Service) UpsertForDay(ctx context.Context, cand Candidate) (Outcome, *models.WotdModel, error) {
	rec := &models.WotdModel{
		ID:        primitive.NewObjectID(),
		Word:      cand.Word,
		Def:       cand.Def,
		DayKey:    models.DayKeyFor(cand.DayKey),
		CreatedAt: time.Now().UTC(),
	}

	err := s.store.Insert(ctx, rec)
	if errors.Is(err, ErrDuplicateDay) {
		return DuplicateSkipped, nil, nil
	}
	if err != nil {
		return Failed, nil, err
	}
	return Created, rec, nil
}

// Latest returns the record with the greatest day key, or nil when none
// exists yet. ok is false only when storage is unreachable; the wire
// collapses both cases to the same default shape, but the distinction
// stays visible here for logging and tests.
func (s *Service) Latest(ctx context.Context) (*models.WotdModel, bool) {
	rec, err := s.store.Latest(ctx)
	if err != nil {
		s.log.Warn("latest wotd unavailable", zap.Error(err))
		return nil, false
	}
	return rec, true
}

// ArchiveLimit bounds the trailing history returned by Archive.
const ArchiveLimit = 31

// Archive returns up to ArchiveLimit records ordered by descending day
// key. ok is false when storage is unreachable.
func (s *Service) Archive(ctx context.Context) ([]models.WotdModel, bool) {
	recs, err := s.store.Archive(ctx, ArchiveLimit)
	if err != nil {
		s.log.Warn("wotd archive unavailable", zap.Error(err))
		return nil, false
	}
	return recs, true
}

// RunIngestion performs one scrape cycle: fetch, parse, and offer the
// result to the upsert gate. Transport failures are logged and abandoned;
// the next timer tick is the retry.
func (s *Service) RunIngestion(ctx context.Context) Attempt {
	word, dayKey, err := s.scraper.ScrapeOnce(ctx)
	if err != nil {
		s.log.Warn("wotd scrape failed", zap.Error(err))
		return Attempt{Outcome: Failed, Err: err}
	}

	// definition is a deliberate placeholder; the source page does not
	// expose one in a stable spot
	outcome, rec, err := s.UpsertForDay(ctx, Candidate{Word: word, DayKey: dayKey})
	switch outcome {
	case Created:
		s.log.Info("wotd ingested",
			zap.String("word", rec.Word),
			zap.Time("dayKey", rec.DayKey),
		)
	case DuplicateSkipped:
		s.log.Info("wotd already ingested for day, skipping",
			zap.String("word", word),
			zap.Time("dayKey", models.DayKeyFor(dayKey)),
		)
	case Failed:
		s.log.Warn("wotd upsert failed", zap.Error(err))
	}
	return Attempt{Outcome: outcome, Word: word, Err: err}
}
