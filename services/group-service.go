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

// emailSearchLimit caps member search results to keep the endpoint cheap.
const emailSearchLimit = 10

// prefixRangeEnd is the high Unicode sentinel closing the prefix range in
// "starts with" queries.
const prefixRangeEnd = ""

type GroupService struct {
	GroupsCollection     *mongo.Collection
	GroupTasksCollection *mongo.Collection
	UsersCollection      *mongo.Collection
}

func NewGroupService(groupsCollection, groupTasksCollection, usersCollection *mongo.Collection) *GroupService {
	return &GroupService{
		GroupsCollection:     groupsCollection,
		GroupTasksCollection: groupTasksCollection,
		UsersCollection:      usersCollection,
	}
}

// CreateGroup stores a new group with the member list as supplied. The
// creator is not appended automatically; clients include it themselves.
func (s *GroupService) CreateGroup(ctx context.Context, name, createdBy string, members []string) (*models.Group, error) {
	group := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedBy: createdBy,
		Members:   members,
		CreatedAt: time.Now(),
	}

	result, err := s.GroupsCollection.InsertOne(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %v", err)
	}
	group.ID = result.InsertedID.(primitive.ObjectID)

	return &group, nil
}

// AddUserToGroup appends the user to the group's member set. Adding an
// existing member is a no-op.
func (s *GroupService) AddUserToGroup(ctx context.Context, groupID primitive.ObjectID, userID string) error {
	update := bson.M{"$addToSet": bson.M{"members": userID}}
	result, err := s.GroupsCollection.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	if err != nil {
		return fmt.Errorf("failed to add user to group: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// GetGroupsForUser returns every group whose member set contains the user.
func (s *GroupService) GetGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	cursor, err := s.GroupsCollection.Find(ctx, bson.M{"members": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve groups: %v", err)
	}
	defer cursor.Close(ctx)

	groups := []models.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %v", err)
	}

	return groups, nil
}

// SearchUsersByEmail returns up to ten users whose email starts with the
// query, using a prefix range over the sorted email field.
func (s *GroupService) SearchUsersByEmail(ctx context.Context, query string) ([]models.UserSummary, error) {
	filter := bson.M{"email": bson.M{"$gte": query, "$lte": query + prefixRangeEnd}}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetLimit(emailSearchLimit)

	cursor, err := s.UsersCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.UserSummary
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, models.UserSummary{ID: user.ID.Hex(), Email: user.Email})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	if len(users) == 0 {
		return nil, ErrNoUsersFound
	}

	return users, nil
}

// GetGroupDetails fetches the group and resolves its full member records in
// a single $in query.
func (s *GroupService) GetGroupDetails(ctx context.Context, groupID primitive.ObjectID) (*models.Group, []models.User, error) {
	var group models.Group
	err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up group: %v", err)
	}

	memberIDs := make([]primitive.ObjectID, 0, len(group.Members))
	for _, member := range group.Members {
		id, err := primitive.ObjectIDFromHex(member)
		if err != nil {
			continue // stale or malformed reference, skip it
		}
		memberIDs = append(memberIDs, id)
	}

	members := []models.User{}
	if len(memberIDs) > 0 {
		cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": memberIDs}})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to retrieve group members: %v", err)
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &members); err != nil {
			return nil, nil, fmt.Errorf("failed to decode group members: %v", err)
		}
	}

	return &group, members, nil
}

// CreateGroupTask inserts a collaborative task with status "To Do". Only the
// group's creator may create tasks; the group existence check and the insert
// are not transactional.
func (s *GroupService) CreateGroupTask(ctx context.Context, task models.GroupTask) (string, error) {
	groupID, err := primitive.ObjectIDFromHex(task.GroupID)
	if err != nil {
		return "", ErrGroupNotFound
	}

	var group models.Group
	err = s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrGroupNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up group: %v", err)
	}

	if group.CreatedBy != task.CreatedBy {
		return "", ErrNotGroupCreator
	}

	task.ID = primitive.NewObjectID()
	task.Status = models.StatusToDo
	task.CreatedAt = time.Now()

	result, err := s.GroupTasksCollection.InsertOne(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to create group task: %v", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetGroupTasks returns all tasks of the group, unordered.
func (s *GroupService) GetGroupTasks(ctx context.Context, groupID string) ([]models.GroupTask, error) {
	cursor, err := s.GroupTasksCollection.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve group tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.GroupTask{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode group tasks: %v", err)
	}

	return tasks, nil
}

// UpdateGroupTaskStatus overwrites the status after checking that the caller
// is either the group's creator or the task's assignee. The parent group is
// re-fetched on every call rather than cached.
func (s *GroupService) UpdateGroupTaskStatus(ctx context.Context, taskID primitive.ObjectID, status, userID string) error {
	var task models.GroupTask
	err := s.GroupTasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrGroupTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up group task: %v", err)
	}

	groupID, err := primitive.ObjectIDFromHex(task.GroupID)
	if err != nil {
		return ErrGroupNotFound
	}

	var group models.Group
	err = s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrGroupNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up group: %v", err)
	}

	isCreator := group.CreatedBy == userID
	isAssignee := task.AssignedTo == userID
	if !isCreator && !isAssignee {
		return ErrNotAuthorized
	}

	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := s.GroupTasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update); err != nil {
		return fmt.Errorf("failed to update group task status: %v", err)
	}
	return nil
}
