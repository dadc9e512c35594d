package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/models"
	"github.com/MrGys1986/TaskManager-Backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskRequest struct {
	NameTask    string `json:"NameTask"`
	Description string `json:"Description"`
	Category    string `json:"Category"`
	DeadLine    string `json:"DeadLine"`
	Status      string `json:"Status"`
	UserID      string `json:"userId"`
}

type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

// parseDeadline accepts RFC3339 timestamps and plain dates.
func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", value)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}

	if req.NameTask == "" || req.Description == "" || req.Category == "" || req.DeadLine == "" || req.Status == "" || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	deadline, err := parseDeadline(req.DeadLine)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid DeadLine format.")
		return
	}

	task := models.Task{
		NameTask:    req.NameTask,
		Description: req.Description,
		Category:    req.Category,
		DeadLine:    deadline,
		Status:      req.Status,
		UserID:      req.UserID,
	}

	if _, err := h.TaskService.CreateTask(r.Context(), task); err != nil {
		logging.Logger.Errorf("Event ID: TASK_CREATE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusCreated, "Task created successfully.", nil)
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "userId is required.")
		return
	}

	tasks, err := h.TaskService.GetTasksByUser(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve tasks.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format.")
		return
	}

	var req struct {
		Status string `json:"Status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "The new status is required.")
		return
	}

	if err := h.TaskService.UpdateTaskStatus(r.Context(), taskID, req.Status); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found.")
			return
		}
		logging.Logger.Errorf("Event ID: TASK_STATUS_UPDATE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "Task status updated successfully.", nil)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format.")
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.NameTask == "" || req.Description == "" || req.Category == "" || req.DeadLine == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	deadline, err := parseDeadline(req.DeadLine)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid DeadLine format.")
		return
	}

	if err := h.TaskService.UpdateTask(r.Context(), taskID, req.NameTask, req.Description, req.Category, deadline, req.Status); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found.")
			return
		}
		logging.Logger.Errorf("Event ID: TASK_UPDATE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "Task updated successfully.", nil)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format.")
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "Task not found.")
			return
		}
		logging.Logger.Errorf("Event ID: TASK_DELETE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "Task deleted successfully.", nil)
}
