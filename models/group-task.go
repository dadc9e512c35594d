package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusToDo is the fixed initial status of every collaborative task.
const StatusToDo = "To Do"

// GroupTask is a collaborative task inside a group. Only the group creator
// may create one; only the creator or the assignee may change its status.
type GroupTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID     string             `bson:"groupId" json:"groupId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	AssignedTo  string             `bson:"assignedTo" json:"assignedTo"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
