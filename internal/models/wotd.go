package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WotdCollection is the MongoDB collection holding word-of-the-day records.
const WotdCollection = "wotds"

// WotdModel is one ingested word-of-the-day record. DayKey carries a unique
// index, so at most one record per UTC calendar day can ever be inserted;
// the index, not application logic, is what makes ingestion idempotent.
type WotdModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Word      string             `bson:"word"          json:"word"`
	Def       string             `bson:"def"           json:"def"`
	DayKey    time.Time          `bson:"dayKey"        json:"dayKey"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}

// DayKeyFor truncates t to UTC midnight, the canonical day key.
func DayKeyFor(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
