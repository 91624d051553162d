package post

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/posts"
	"net/http"
)

// GetMyPostsHandler handles the author's own post listing
type GetMyPostsHandler struct {
	service posts.Service
}

// NewGetMyPostsHandler creates a new my-posts handler
func NewGetMyPostsHandler(service posts.Service) *GetMyPostsHandler {
	return &GetMyPostsHandler{service: service}
}

// HandleGetMyPosts returns the authenticated user's posts, newest first
// GET /api/me/posts
func (h *GetMyPostsHandler) HandleGetMyPosts(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetUserID(r)
	if authorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	myPosts, err := h.service.GetMyPosts(r.Context(), authorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts": myPosts,
	})
}
