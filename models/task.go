package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a personal task owned by exactly one user. Field names follow the
// client contract (PascalCase body fields, userId foreign key as hex string).
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NameTask    string             `bson:"NameTask" json:"NameTask"`
	Description string             `bson:"Description" json:"Description"`
	Category    string             `bson:"Category" json:"Category"`
	DeadLine    time.Time          `bson:"DeadLine" json:"DeadLine"`
	Status      string             `bson:"Status" json:"Status"`
	UserID      string             `bson:"userId" json:"userId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
