package post

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/posts"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DeletePostHandler handles post deletion
type DeletePostHandler struct {
	service posts.Service
}

// NewDeletePostHandler creates a new delete post handler
func NewDeletePostHandler(service posts.Service) *DeletePostHandler {
	return &DeletePostHandler{service: service}
}

// HandleDeletePost deletes a post owned by the caller, cascading its likes
// and comments
// DELETE /api/posts/{postID}
func (h *DeletePostHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	requesterID := middleware.GetUserID(r)
	if requesterID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, requesterID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
	})
}
