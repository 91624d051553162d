package upload

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/blobs"
	"log/slog"
	"net/http"
)

// IssueUploadHandler hands out presigned upload targets for image blobs
type IssueUploadHandler struct {
	gateway blobs.Gateway
}

// NewIssueUploadHandler creates a new upload target handler
func NewIssueUploadHandler(gateway blobs.Gateway) *IssueUploadHandler {
	return &IssueUploadHandler{gateway: gateway}
}

// HandleIssueUpload returns a presigned PUT URL and the key the uploaded
// image will be stored under. The client uploads directly to the URL and
// references the key when creating a post.
// POST /api/uploads
func (h *IssueUploadHandler) HandleIssueUpload(w http.ResponseWriter, r *http.Request) {
	target, err := h.gateway.IssueUploadTarget(r.Context())
	if err != nil {
		slog.Error("failed to issue upload target", slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to issue upload URL")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, target)
}
