package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCollection is the MongoDB collection holding registered users.
const UserCollection = "users"

// UserModel is a registered user. Password holds the bcrypt hash and is
// never serialized.
type UserModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username"      json:"username"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
