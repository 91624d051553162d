package post

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/posts"
	"encoding/json"
	"net/http"
)

// CreatePostHandler handles post creation
type CreatePostHandler struct {
	service posts.Service
}

// NewCreatePostHandler creates a new create post handler
func NewCreatePostHandler(service posts.Service) *CreatePostHandler {
	return &CreatePostHandler{service: service}
}

// CreatePostInput is the request body for creating a post
type CreatePostInput struct {
	ImageKey string  `json:"imageKey"`
	Caption  *string `json:"caption,omitempty"`
}

// HandleCreatePost creates a new post
// POST /api/posts
//
// Request body: { "imageKey": "images/...", "caption": "..." }
func (h *CreatePostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var input CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if input.ImageKey == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "imageKey is required")
		return
	}

	authorID := middleware.GetUserID(r)
	if authorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	created, err := h.service.CreatePost(r.Context(), posts.CreatePostRequest{
		AuthorID: authorID,
		ImageKey: input.ImageKey,
		Caption:  input.Caption,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
