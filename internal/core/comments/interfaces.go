package comments

import "context"

// Service defines the business logic interface for comments
type Service interface {
	// AddComment creates a comment on a post and bumps the post's comment
	// counter. Returns ErrPostNotFound if the post does not exist and a
	// ValidationError for empty or oversized text.
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)

	// GetComments returns all comments on a post, newest first, with author
	// display names resolved.
	GetComments(ctx context.Context, postID string) ([]*CommentView, error)
}

// FeedInvalidator drops any cached feed page after a counter mutation.
// Satisfied by the feed cache; nil disables invalidation.
type FeedInvalidator interface {
	Invalidate(ctx context.Context)
}

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts a comment and increments the post's comment counter in
	// the same transaction. Returns ErrPostNotFound if the post is missing.
	Create(ctx context.Context, comment *Comment) (*Comment, error)

	// ListByPost returns all comments on a post, newest first
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)

	// ListRecentByPost returns the most recent comments on a post, newest
	// first, capped at limit. Used for feed hydration.
	ListRecentByPost(ctx context.Context, postID string, limit int) ([]*Comment, error)

	// CountByPost returns the number of live comments referencing a post
	CountByPost(ctx context.Context, postID string) (int, error)
}
