package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/models"
	"github.com/MrGys1986/TaskManager-Backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// DefaultRole is assigned to registrations that do not specify a role.
const DefaultRole = "usuario"

type AuthService struct {
	UserCollection *mongo.Collection
}

func NewAuthService(userCollection *mongo.Collection) *AuthService {
	return &AuthService{UserCollection: userCollection}
}

// RegisterUser creates a new user and returns its generated id. The
// duplicate-email check is check-then-insert; a concurrent registration with
// the same email can slip through.
func (s *AuthService) RegisterUser(ctx context.Context, email, password, username, role string) (string, error) {
	if role == "" {
		role = DefaultRole
	}

	var existing models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("failed to check existing user: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		Email:     email,
		Password:  string(hashedPassword),
		Username:  username,
		Role:      role,
		LastLogin: time.Now(),
	}

	result, err := s.UserCollection.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to save user: %v", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// LoginUser verifies the credentials and returns the user together with a
// signed session token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %v", err)
	}

	// Bookkeeping only; a failed write must not block the login.
	update := bson.M{"$set": bson.M{"last_login": time.Now()}}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		logging.Logger.Warnf("Event ID: LAST_LOGIN_UPDATE_FAILED, Description: Failed to update last_login for %s: %v", user.Email, err)
	}

	return &user, token, nil
}
