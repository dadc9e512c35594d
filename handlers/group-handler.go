package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/models"
	"github.com/MrGys1986/TaskManager-Backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupHandler struct {
	GroupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{GroupService: groupService}
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string   `json:"name"`
		CreatedBy string   `json:"createdBy"`
		Members   []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.Name == "" || req.CreatedBy == "" || req.Members == nil {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if _, err := h.GroupService.CreateGroup(r.Context(), req.Name, req.CreatedBy, req.Members); err != nil {
		logging.Logger.Errorf("Event ID: GROUP_CREATE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create the group.")
		return
	}

	respondSuccess(w, http.StatusCreated, "Group created successfully.", nil)
}

func (h *GroupHandler) AddUserToGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID string `json:"groupId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.GroupID == "" || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "groupId and userId are required.")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid group ID format.")
		return
	}

	if err := h.GroupService.AddUserToGroup(r.Context(), groupID, req.UserID); err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			respondError(w, http.StatusNotFound, "Group not found.")
			return
		}
		logging.Logger.Errorf("Event ID: GROUP_ADD_USER_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "User added to the group.", nil)
}

func (h *GroupHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "userId is required.")
		return
	}

	groups, err := h.GroupService.GetGroupsForUser(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: GROUP_LIST_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve groups.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"groups": groups})
}

// GetUsers searches users by email prefix for the member picker. An empty
// result is a 404, not an empty list.
func (h *GroupHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "A search term is required.")
		return
	}

	users, err := h.GroupService.SearchUsersByEmail(r.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrNoUsersFound) {
			respondError(w, http.StatusNotFound, "No users found.")
			return
		}
		logging.Logger.Errorf("Event ID: USER_SEARCH_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve users.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"users": users})
}

func (h *GroupHandler) GetGroupDetails(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(mux.Vars(r)["groupId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid group ID format.")
		return
	}

	group, members, err := h.GroupService.GetGroupDetails(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			respondError(w, http.StatusNotFound, "Group not found.")
			return
		}
		logging.Logger.Errorf("Event ID: GROUP_DETAILS_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to retrieve group details.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{
		"group":   group,
		"members": members,
	})
}

func (h *GroupHandler) CreateGroupTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID     string `json:"groupId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		AssignedTo  string `json:"assignedTo"`
		CreatedBy   string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.GroupID == "" || req.Name == "" || req.Description == "" || req.AssignedTo == "" || req.CreatedBy == "" {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	task := models.GroupTask{
		GroupID:     req.GroupID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   req.CreatedBy,
	}

	taskID, err := h.GroupService.CreateGroupTask(r.Context(), task)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			respondError(w, http.StatusNotFound, "Group not found.")
		case errors.Is(err, services.ErrNotGroupCreator):
			respondError(w, http.StatusForbidden, "No permission to create tasks in this group.")
		default:
			logging.Logger.Errorf("Event ID: GROUP_TASK_CREATE_FAILED, Description: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to create the task.")
		}
		return
	}

	respondSuccess(w, http.StatusCreated, "Task created successfully.", map[string]interface{}{
		"taskId": taskID,
	})
}

func (h *GroupHandler) GetGroupTasks(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("groupId")
	if groupID == "" {
		respondError(w, http.StatusBadRequest, "groupId is required.")
		return
	}

	tasks, err := h.GroupService.GetGroupTasks(r.Context(), groupID)
	if err != nil {
		logging.Logger.Errorf("Event ID: GROUP_TASK_LIST_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"tasks": tasks})
}

func (h *GroupHandler) UpdateGroupTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format.")
		return
	}

	var req struct {
		Status string `json:"status"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.Status == "" || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "status and userId are required.")
		return
	}

	if err := h.GroupService.UpdateGroupTaskStatus(r.Context(), taskID, req.Status, req.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupTaskNotFound):
			respondError(w, http.StatusNotFound, "Task not found.")
		case errors.Is(err, services.ErrGroupNotFound):
			respondError(w, http.StatusNotFound, "Group not found.")
		case errors.Is(err, services.ErrNotAuthorized):
			respondError(w, http.StatusForbidden, "No permission to change the status of this task.")
		default:
			logging.Logger.Errorf("Event ID: GROUP_TASK_STATUS_FAILED, Description: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to update the status.")
		}
		return
	}

	respondSuccess(w, http.StatusOK, "Status updated successfully.", nil)
}
