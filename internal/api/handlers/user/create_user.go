package user

import (
	"Photostream/internal/api/handlers"
	"Photostream/internal/core/users"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// TokenIssuer signs identity tokens for newly created users.
// Satisfied by middleware.IdentityMiddleware.
type TokenIssuer interface {
	IssueToken(userID, name string) (string, error)
}

// CreateUserHandler handles account sign-up
type CreateUserHandler struct {
	service users.UserService
	issuer  TokenIssuer
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(service users.UserService, issuer TokenIssuer) *CreateUserHandler {
	return &CreateUserHandler{service: service, issuer: issuer}
}

// CreateUserInput is the request body for sign-up
type CreateUserInput struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// HandleCreateUser signs up a new user and returns an identity token.
// Claims an existing placeholder user holding the username when one exists.
// POST /api/users
//
// Request body: { "username": "alice", "name": "Alice" }
func (h *CreateUserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if input.Username == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "username is required")
		return
	}

	created, err := h.service.CreateUser(r.Context(), users.CreateUserRequest{
		UserID:   uuid.NewString(),
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.issuer.IssueToken(created.ID, created.Name)
	if err != nil {
		slog.Error("failed to issue identity token", slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  created,
		"token": token,
	})
}
