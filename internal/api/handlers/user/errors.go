package user

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/users"
	"errors"
	"log/slog"
	"net/http"
)

// handleServiceError converts user service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *users.ValidationError
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")
	case errors.Is(err, users.ErrUsernameTaken):
		handlers.WriteError(w, http.StatusConflict, "UsernameTaken", "Username already taken")
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Message)
	default:
		slog.Error("user handler error", slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
