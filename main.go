package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MrGys1986/TaskManager-Backend/handlers"
	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/middleware"
	"github.com/MrGys1986/TaskManager-Backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager Backend...")

	// Only fill in vars that are not already set in the environment.
	if envMap, err := godotenv.Read(); err == nil {
		for key, value := range envMap {
			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI is not set in the environment variables.")
	}
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "taskmanager"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("Users")
	tasksCollection := db.Collection("Tasks")
	groupsCollection := db.Collection("Groups")
	groupTasksCollection := db.Collection("GroupTasks")

	authService := services.NewAuthService(usersCollection)
	taskService := services.NewTaskService(tasksCollection)
	groupService := services.NewGroupService(groupsCollection, groupTasksCollection, usersCollection)
	userAdminService := services.NewUserAdminService(usersCollection)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	groupHandler := handlers.NewGroupHandler(groupService)
	userAdminHandler := handlers.NewUserAdminHandler(userAdminService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/update-task-status/{taskId}", taskHandler.UpdateTaskStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/update-task/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/delete-task/{taskId}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/api/groups/create-group", groupHandler.CreateGroup).Methods(http.MethodPost)
	r.HandleFunc("/api/groups/add-user-to-group", groupHandler.AddUserToGroup).Methods(http.MethodPatch)
	r.HandleFunc("/api/groups", groupHandler.GetGroups).Methods(http.MethodGet)
	r.HandleFunc("/api/groups/get-users", groupHandler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/groups/get-group-details/{groupId}", groupHandler.GetGroupDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/groups/create-group-task", groupHandler.CreateGroupTask).Methods(http.MethodPost)
	r.HandleFunc("/api/groups/get-group-tasks", groupHandler.GetGroupTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/groups/update-group-task-status/{taskId}", groupHandler.UpdateGroupTaskStatus).Methods(http.MethodPut)

	r.HandleFunc("/api/users/get-users-admin", userAdminHandler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users/update-user-admin/{userId}", userAdminHandler.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/api/users/delete-user-admin/{userId}", userAdminHandler.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is running"))
	}).Methods(http.MethodGet)

	allowedOrigin := os.Getenv("FRONTEND_URL")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	corsRouter := middleware.EnableCORS(allowedOrigin, r)

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
