package comment

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/comments"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetCommentsHandler handles comment listing
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new get comments handler
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{service: service}
}

// HandleGetComments returns all comments on a post, newest first
// GET /api/posts/{postID}/comments
func (h *GetCommentsHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	commentList, err := h.service.GetComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"comments": commentList,
	})
}
