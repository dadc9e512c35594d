package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrGys1986/TaskManager-Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskService struct {
	TasksCollection *mongo.Collection
}

func NewTaskService(tasksCollection *mongo.Collection) *TaskService {
	return &TaskService{TasksCollection: tasksCollection}
}

func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	return &task, nil
}

// GetTasksByUser returns the user's tasks, newest first.
func (s *TaskService) GetTasksByUser(ctx context.Context, userID string) ([]models.Task, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return tasks, nil
}

// UpdateTaskStatus overwrites only the status field. There is no ownership
// check; any caller may update any task.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"Status": status}}
	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task status: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateTask overwrites name, description, category, deadline and status.
func (s *TaskService) UpdateTask(ctx context.Context, taskID primitive.ObjectID, name, description, category string, deadline time.Time, status string) error {
	update := bson.M{"$set": bson.M{
		"NameTask":    name,
		"Description": description,
		"Category":    category,
		"DeadLine":    deadline,
		"Status":      status,
	}}

	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID primitive.ObjectID) error {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up task: %v", err)
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}
