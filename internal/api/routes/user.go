package routes

import (
	"Photostream/internal/api/handlers/user"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers account and user lookup endpoints on the router
func RegisterUserRoutes(r chi.Router, service users.UserService, auth *middleware.IdentityMiddleware) {
	createHandler := user.NewCreateUserHandler(service, auth)
	getHandler := user.NewGetUserHandler(service)
	searchHandler := user.NewSearchUsersHandler(service)

	// Sign-up is the one unauthenticated mutation: it issues the identity token
	r.Post("/api/users", createHandler.HandleCreateUser)

	r.Get("/api/users", searchHandler.HandleSearchUsers)
	r.Get("/api/users/{userID}", getHandler.HandleGetUser)
}
