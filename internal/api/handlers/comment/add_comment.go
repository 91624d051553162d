package comment

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/comments"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AddCommentHandler handles comment creation
type AddCommentHandler struct {
	service comments.Service
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(service comments.Service) *AddCommentHandler {
	return &AddCommentHandler{service: service}
}

// AddCommentInput is the request body for creating a comment
type AddCommentInput struct {
	Text string `json:"text"`
}

// HandleAddComment creates a comment on a post
// POST /api/posts/{postID}/comments
//
// Request body: { "text": "..." }
func (h *AddCommentHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	var input AddCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	created, err := h.service.AddComment(r.Context(), comments.AddCommentRequest{
		PostID: postID,
		UserID: userID,
		Text:   input.Text,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
