package like

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/likes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ToggleLikeHandler handles like toggling
type ToggleLikeHandler struct {
	service likes.Service
}

// NewToggleLikeHandler creates a new toggle like handler
func NewToggleLikeHandler(service likes.Service) *ToggleLikeHandler {
	return &ToggleLikeHandler{service: service}
}

// HandleToggleLike flips the caller's like on a post and returns the new state
// POST /api/posts/{postID}/like
//
// Response body: { "liked": true, "likeCount": 4 }
func (h *ToggleLikeHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	result, err := h.service.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// handleServiceError converts like service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, likes.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	default:
		slog.Error("like handler error", slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
