package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost inserts a post with both counters at zero. The image key
	// must resolve through the storage gateway; an unresolvable key is a
	// ValidationError, not a lookup failure.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetFeed assembles the global feed: newest posts first, each hydrated
	// with image URL, author name, viewer like-state, and recent comments.
	// viewerID may be empty for anonymous viewers (IsLiked is then false).
	GetFeed(ctx context.Context, viewerID string) ([]*FeedEntry, error)

	// GetMyPosts returns the author's posts, newest first, with resolved
	// image URLs
	GetMyPosts(ctx context.Context, authorID string) ([]*AuthorPost, error)

	// DeletePost removes a post together with its likes and comments.
	// Returns ErrPostNotFound if the post doesn't exist and ErrNotAuthorized
	// if the requester is not the post's author.
	DeletePost(ctx context.Context, postID, requesterID string) error
}

// Repository defines the data access interface for posts
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)

	// ListRecent returns the newest posts, creation time descending
	ListRecent(ctx context.Context, limit int) ([]*Post, error)

	// ListByAuthor returns an author's posts, newest first
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)

	// Delete removes the post and all like and comment rows referencing it in
	// one transaction. Returns ErrPostNotFound if no post was deleted.
	Delete(ctx context.Context, id string) error
}

// LikeReader reports viewer like-state for feed hydration. Satisfied by the
// likes repository; declared here to keep the dependency one-way.
type LikeReader interface {
	ListLikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// RecentPostCache is an optional read-through cache for the unhydrated global
// post page. Viewer-specific state is never cached. A nil cache disables
// caching entirely.
type RecentPostCache interface {
	// GetRecent returns the cached post page and whether it was present
	GetRecent(ctx context.Context) ([]*Post, bool)

	// SetRecent stores the post page
	SetRecent(ctx context.Context, postPage []*Post)

	// Invalidate drops the cached page after any post mutation
	Invalidate(ctx context.Context)
}
