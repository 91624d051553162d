package post

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/posts"
	"net/http"
)

// GetFeedHandler handles the global feed query
type GetFeedHandler struct {
	service posts.Service
}

// NewGetFeedHandler creates a new feed handler
func NewGetFeedHandler(service posts.Service) *GetFeedHandler {
	return &GetFeedHandler{service: service}
}

// HandleGetFeed returns the global feed, newest first
// GET /api/feed
//
// Anonymous viewers get the same feed with isLiked always false.
func (h *GetFeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)

	feed, err := h.service.GetFeed(r.Context(), viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"feed": feed,
	})
}
