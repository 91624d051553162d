package user

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/users"
	"net/http"
)

// SearchUsersHandler handles username search
type SearchUsersHandler struct {
	service users.UserService
}

// NewSearchUsersHandler creates a new search users handler
func NewSearchUsersHandler(service users.UserService) *SearchUsersHandler {
	return &SearchUsersHandler{service: service}
}

// HandleSearchUsers matches usernames by case-insensitive prefix.
// An empty query returns an empty list.
// GET /api/users?q=ali
func (h *SearchUsersHandler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches, err := h.service.SearchUsers(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": matches,
	})
}
