package likes

import "context"

// Service defines the business logic interface for likes
type Service interface {
	// ToggleLike flips the like state for the (user, post) pair and keeps the
	// post's like counter in sync. Returns the resulting state.
	// Returns ErrPostNotFound if the post does not exist.
	ToggleLike(ctx context.Context, postID, userID string) (*ToggleResult, error)
}

// FeedInvalidator drops any cached feed page after a counter mutation.
// Satisfied by the feed cache; nil disables invalidation.
type FeedInvalidator interface {
	Invalidate(ctx context.Context)
}

// Repository defines the data access interface for likes
type Repository interface {
	// Toggle inserts or deletes the like for (userID, postID) and adjusts the
	// post's like counter in the same transaction. The post row is locked for
	// the duration, so concurrent toggles on the same post serialize and the
	// counter can never drift from the underlying like rows.
	// Returns ErrPostNotFound if the post does not exist.
	Toggle(ctx context.Context, postID, userID string) (*ToggleResult, error)

	// ListLikedPostIDs reports which of the given posts the user currently
	// likes. Used for viewer-state hydration in feeds; posts the user does
	// not like are absent from the map.
	ListLikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)

	// CountByPost returns the number of live likes referencing a post
	CountByPost(ctx context.Context, postID string) (int, error)
}
