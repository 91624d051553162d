package user

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/users"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetUserHandler handles user lookup
type GetUserHandler struct {
	service users.UserService
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(service users.UserService) *GetUserHandler {
	return &GetUserHandler{service: service}
}

// HandleGetUser returns a user by ID
// GET /api/users/{userID}
func (h *GetUserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "userID is required")
		return
	}

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, u)
}
