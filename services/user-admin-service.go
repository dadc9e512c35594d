package services

import (
	"context"
	"fmt"

	"github.com/MrGys1986/TaskManager-Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserAdminService struct {
	UserCollection *mongo.Collection
}

func NewUserAdminService(userCollection *mongo.Collection) *UserAdminService {
	return &UserAdminService{UserCollection: userCollection}
}

// GetUsers lists all users, or those whose username starts with searchTerm.
func (s *UserAdminService) GetUsers(ctx context.Context, searchTerm string) ([]models.User, error) {
	filter := bson.M{}
	findOptions := options.Find()
	if searchTerm != "" {
		filter = bson.M{"username": bson.M{"$gte": searchTerm, "$lte": searchTerm + prefixRangeEnd}}
		findOptions.SetSort(bson.D{{Key: "username", Value: 1}})
	}

	cursor, err := s.UserCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}

	return users, nil
}

// UpdateUser overwrites username, email and role unconditionally. The caller
// is not checked to be an administrator.
func (s *UserAdminService) UpdateUser(ctx context.Context, userID primitive.ObjectID, username, email, role string) error {
	update := bson.M{"$set": bson.M{"username": username, "email": email, "rol": role}}
	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user record. There is no existence check before the
// delete and no cascade to the user's tasks or groups.
func (s *UserAdminService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.UserCollection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	return nil
}
