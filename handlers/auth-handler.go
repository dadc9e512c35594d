package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrGys1986/TaskManager-Backend/logging"
	"github.com/MrGys1986/TaskManager-Backend/services"
	"github.com/MrGys1986/TaskManager-Backend/utils"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "All fields are required.")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email format.")
		return
	}
	if !utils.IsValidPassword(req.Password) {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters long.")
		return
	}

	userID, err := h.AuthService.RegisterUser(r.Context(), req.Email, req.Password, req.Username, req.Rol)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "The user is already registered.")
			return
		}
		logging.Logger.Errorf("Event ID: REGISTER_FAILED, Description: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully.", map[string]interface{}{
		"userId": userID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request data.")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, token, err := h.AuthService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			respondError(w, http.StatusUnauthorized, "User not found.")
		case errors.Is(err, services.ErrInvalidPassword):
			respondError(w, http.StatusUnauthorized, "Incorrect password.")
		default:
			logging.Logger.Errorf("Event ID: LOGIN_FAILED, Description: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error.")
		}
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful.", map[string]interface{}{
		"token":    token,
		"username": user.Username,
		"userId":   user.ID.Hex(),
		"role":     user.Role,
	})
}
