package services

// Database-backed tests. They need a reachable MongoDB and are skipped when
// TEST_MONGO_URI is not set, e.g.
//
//	TEST_MONGO_URI=mongodb://localhost:27017 go test ./services/
//
// Each test gets its own throwaway database that is dropped on cleanup.

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/MrGys1986/TaskManager-Backend/models"
	"github.com/MrGys1986/TaskManager-Backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping database-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("taskmanager_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	userID, err := s.RegisterUser(ctx, "a@b.com", "secret1", "a", "")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)

	_, err = s.RegisterUser(ctx, "a@b.com", "another1", "b", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	count, err := db.Collection("Users").CountDocuments(ctx, bson.M{"email": "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "duplicate registration must not insert a record")
}

func TestRegisterDefaultsRole(t *testing.T) {
	db := testDB(t)
	s := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "a@b.com", "secret1", "a", "")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Collection("Users").FindOne(ctx, bson.M{"email": "a@b.com"}).Decode(&user))
	assert.Equal(t, DefaultRole, user.Role)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")
}

func TestLoginIssuesTokenWithStoredClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "integration-secret")

	db := testDB(t)
	s := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	userID, err := s.RegisterUser(ctx, "a@b.com", "secret1", "a", "admin")
	require.NoError(t, err)

	user, token, err := s.LoginUser(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "a", user.Username)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testDB(t)
	s := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "a@b.com", "secret1", "a", "")
	require.NoError(t, err)

	_, _, err = s.LoginUser(ctx, "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, _, err = s.LoginUser(ctx, "nobody@b.com", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetTasksByUserNewestFirst(t *testing.T) {
	db := testDB(t)
	s := NewTaskService(db.Collection("Tasks"))
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := s.CreateTask(ctx, models.Task{
			NameTask:    name,
			Description: "d",
			Category:    "c",
			DeadLine:    time.Now().Add(24 * time.Hour),
			Status:      "open",
			UserID:      "owner-1",
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond) // createdAt has millisecond precision in the store
	}
	_, err := s.CreateTask(ctx, models.Task{
		NameTask: "other", Description: "d", Category: "c",
		DeadLine: time.Now(), Status: "open", UserID: "owner-2",
	})
	require.NoError(t, err)

	tasks, err := s.GetTasksByUser(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].NameTask)
	assert.Equal(t, "second", tasks[1].NameTask)
	assert.Equal(t, "first", tasks[2].NameTask)
}

func TestDeleteTaskRemovesRecord(t *testing.T) {
	db := testDB(t)
	s := NewTaskService(db.Collection("Tasks"))
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{
		NameTask: "t", Description: "d", Category: "c",
		DeadLine: time.Now(), Status: "open", UserID: "owner-1",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, created.ID))

	assert.ErrorIs(t, s.UpdateTaskStatus(ctx, created.ID, "done"), ErrTaskNotFound)
	assert.ErrorIs(t, s.DeleteTask(ctx, created.ID), ErrTaskNotFound)

	tasks, err := s.GetTasksByUser(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestAddUserToGroupIsIdempotent(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, "team", "creator-1", []string{"creator-1"})
	require.NoError(t, err)

	require.NoError(t, s.AddUserToGroup(ctx, group.ID, "member-1"))
	require.NoError(t, s.AddUserToGroup(ctx, group.ID, "member-1"))

	groups, err := s.GetGroupsForUser(ctx, "member-1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"creator-1", "member-1"}, groups[0].Members)
}

func TestSearchUsersByEmailPrefix(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	auth := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	for _, email := range []string{"alice@x.com", "alicia@x.com", "bob@x.com"} {
		_, err := auth.RegisterUser(ctx, email, "secret1", email, "")
		require.NoError(t, err)
	}

	users, err := s.SearchUsersByEmail(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice@x.com", users[0].Email)
	assert.Equal(t, "alicia@x.com", users[1].Email)

	_, err = s.SearchUsersByEmail(ctx, "zz")
	assert.ErrorIs(t, err, ErrNoUsersFound)
}

func TestGetGroupDetailsResolvesMembers(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	auth := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	aliceID, err := auth.RegisterUser(ctx, "alice@x.com", "secret1", "alice", "")
	require.NoError(t, err)
	bobID, err := auth.RegisterUser(ctx, "bob@x.com", "secret1", "bob", "")
	require.NoError(t, err)

	group, err := s.CreateGroup(ctx, "team", aliceID, []string{aliceID, bobID})
	require.NoError(t, err)

	got, members, err := s.GetGroupDetails(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "team", got.Name)
	require.Len(t, members, 2)

	emails := []string{members[0].Email, members[1].Email}
	assert.ElementsMatch(t, []string{"alice@x.com", "bob@x.com"}, emails)
}

func TestCreateGroupTaskRequiresGroupCreator(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, "team", "creator-1", []string{"creator-1", "member-1"})
	require.NoError(t, err)

	_, err = s.CreateGroupTask(ctx, models.GroupTask{
		GroupID: group.ID.Hex(), Name: "t", Description: "d",
		AssignedTo: "member-1", CreatedBy: "member-1",
	})
	assert.ErrorIs(t, err, ErrNotGroupCreator)

	count, err := db.Collection("GroupTasks").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "forbidden creation must not insert a record")

	taskID, err := s.CreateGroupTask(ctx, models.GroupTask{
		GroupID: group.ID.Hex(), Name: "t", Description: "d",
		AssignedTo: "member-1", CreatedBy: "creator-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, taskID)

	tasks, err := s.GetGroupTasks(ctx, group.ID.Hex())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusToDo, tasks[0].Status)
}

func TestCreateGroupTaskMissingGroup(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	ctx := context.Background()

	_, err := s.CreateGroupTask(ctx, models.GroupTask{
		GroupID: "64f1c9a2b3d4e5f601234567", Name: "t", Description: "d",
		AssignedTo: "u1", CreatedBy: "u1",
	})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestUpdateGroupTaskStatusPermissions(t *testing.T) {
	db := testDB(t)
	s := NewGroupService(db.Collection("Groups"), db.Collection("GroupTasks"), db.Collection("Users"))
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, "team", "creator-1", []string{"creator-1", "assignee-1", "outsider-1"})
	require.NoError(t, err)

	taskID, err := s.CreateGroupTask(ctx, models.GroupTask{
		GroupID: group.ID.Hex(), Name: "t", Description: "d",
		AssignedTo: "assignee-1", CreatedBy: "creator-1",
	})
	require.NoError(t, err)

	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	require.NoError(t, err)

	// Creator and assignee may change the status; anyone else may not.
	require.NoError(t, s.UpdateGroupTaskStatus(ctx, taskObjectID, "In Progress", "creator-1"))
	require.NoError(t, s.UpdateGroupTaskStatus(ctx, taskObjectID, "Done", "assignee-1"))
	assert.ErrorIs(t, s.UpdateGroupTaskStatus(ctx, taskObjectID, "To Do", "outsider-1"), ErrNotAuthorized)

	tasks, err := s.GetGroupTasks(ctx, group.ID.Hex())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Done", tasks[0].Status)
}

func TestAdminGetUsersByUsernamePrefix(t *testing.T) {
	db := testDB(t)
	admin := NewUserAdminService(db.Collection("Users"))
	auth := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	for _, username := range []string{"ana", "anabel", "carlos"} {
		_, err := auth.RegisterUser(ctx, username+"@x.com", "secret1", username, "")
		require.NoError(t, err)
	}

	all, err := admin.GetUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := admin.GetUsers(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "ana", filtered[0].Username)
	assert.Equal(t, "anabel", filtered[1].Username)
}

func TestAdminUpdateAndDeleteUser(t *testing.T) {
	db := testDB(t)
	admin := NewUserAdminService(db.Collection("Users"))
	auth := NewAuthService(db.Collection("Users"))
	ctx := context.Background()

	userID, err := auth.RegisterUser(ctx, "a@b.com", "secret1", "a", "")
	require.NoError(t, err)
	objectID, err := primitive.ObjectIDFromHex(userID)
	require.NoError(t, err)

	require.NoError(t, admin.UpdateUser(ctx, objectID, "renamed", "new@b.com", "admin"))

	var user models.User
	require.NoError(t, db.Collection("Users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user))
	assert.Equal(t, "renamed", user.Username)
	assert.Equal(t, "new@b.com", user.Email)
	assert.Equal(t, "admin", user.Role)

	require.NoError(t, admin.DeleteUser(ctx, objectID))
	// Deleting again is still a success; there is no existence check.
	require.NoError(t, admin.DeleteUser(ctx, objectID))

	count, err := db.Collection("Users").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
