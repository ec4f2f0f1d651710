package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

// AuthHandler exposes authentication and account endpoints
type AuthHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewAuthHandler(users *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "login successful", resp)
}

// Register handles POST /auth/register (admin only)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.users.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, "user registered", dto)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	dto, err := h.users.Me(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "user retrieved", dto)
}

// ListUsers handles GET /users (admin only), with an optional role filter
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var role *domain.Role
	if param := r.URL.Query().Get("role"); param != "" {
		candidate := domain.Role(param)
		if !candidate.IsValid() {
			respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid role filter")
			return
		}
		role = &candidate
	}

	dtos, err := h.users.List(r.Context(), role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "users retrieved", dtos)
}
