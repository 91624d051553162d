package routes

import (
	"Photostream/internal/api/handlers/upload"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/blobs"

	"github.com/go-chi/chi/v5"
)

// RegisterUploadRoutes registers the image upload endpoint on the router
func RegisterUploadRoutes(r chi.Router, gateway blobs.Gateway, auth *middleware.IdentityMiddleware) {
	issueHandler := upload.NewIssueUploadHandler(gateway)

	r.With(auth.RequireAuth).Post("/api/uploads", issueHandler.HandleIssueUpload)
}
