package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"password"`
	Username  string             `bson:"username" json:"username"`
	Role      string             `bson:"rol" json:"rol"`
	LastLogin time.Time          `bson:"last_login" json:"last_login"`
}

// UserSummary is the reduced shape returned by the member search endpoint.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
