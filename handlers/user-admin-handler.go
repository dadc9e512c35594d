package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAdminHandler exposes the unrestricted user administration endpoints.
// The caller's role is not verified; see DESIGN.md.
type UserAdminHandler struct {
	UserAdminService *services.UserAdminService
}

func NewUserAdminHandler(userAdminService *services.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{UserAdminService: userAdminService}
}

func (h *UserAdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("searchTerm")

	users, err := h.UserAdminService.GetUsers(r.Context(), searchTerm)
	if err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_USER_LIST_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]interface{}{"users": users})
}

func (h *UserAdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}
	if req.Username == "" || req.Email == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if err := h.UserAdminService.UpdateUser(r.Context(), userID, req.Username, req.Email, req.Role); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		logging.Logger.Errorf("Event ID: ADMIN_USER_UPDATE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "User updated successfully.", nil)
}

func (h *UserAdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	if err := h.UserAdminService.DeleteUser(r.Context(), userID); err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_USER_DELETE_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusOK, "User deleted successfully.", nil)
}
