package routes

import (
	"Photostream/internal/api/handlers/comment"
	"Photostream/internal/api/handlers/like"
	"Photostream/internal/api/middleware"
	"Photostream/internal/core/comments"
	"Photostream/internal/core/likes"

	"github.com/go-chi/chi/v5"
)

// RegisterEngagementRoutes registers like and comment endpoints on the router
func RegisterEngagementRoutes(
	r chi.Router,
	likeService likes.Service,
	commentService comments.Service,
	auth *middleware.IdentityMiddleware,
) {
	toggleHandler := like.NewToggleLikeHandler(likeService)
	addHandler := comment.NewAddCommentHandler(commentService)
	listHandler := comment.NewGetCommentsHandler(commentService)

	r.With(auth.RequireAuth).Post("/api/posts/{postID}/like", toggleHandler.HandleToggleLike)
	r.With(auth.RequireAuth).Post("/api/posts/{postID}/comments", addHandler.HandleAddComment)

	// Comment reading is public
	r.Get("/api/posts/{postID}/comments", listHandler.HandleGetComments)
}
