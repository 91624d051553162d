package routes

import (
	"Photostream/internal/api/handlers/post"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post and feed endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, auth *middleware.IdentityMiddleware) {
	createHandler := post.NewCreatePostHandler(service)
	feedHandler := post.NewGetFeedHandler(service)
	myPostsHandler := post.NewGetMyPostsHandler(service)
	deleteHandler := post.NewDeletePostHandler(service)

	// The feed is public; a token, when present, hydrates viewer like-state
	r.With(auth.OptionalAuth).Get("/api/feed", feedHandler.HandleGetFeed)

	r.With(auth.RequireAuth).Post("/api/posts", createHandler.HandleCreatePost)
	r.With(auth.RequireAuth).Get("/api/me/posts", myPostsHandler.HandleGetMyPosts)
	r.With(auth.RequireAuth).Delete("/api/posts/{postID}", deleteHandler.HandleDeletePost)
}
