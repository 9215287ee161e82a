package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentCollection is the MongoDB collection holding search-page comments.
const CommentCollection = "comments"

// CommentModel is a user comment attached to a search query.
type CommentModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Query     string             `bson:"query"         json:"query"`
	Author    string             `bson:"author"        json:"author"`
	Text      string             `bson:"text"          json:"text"`
	Likers    []string           `bson:"likers"        json:"likers"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
