package posts

import (
	"time"

	"Photostream/internal/core/comments"
)

// Post represents a post row in the Photostream database.
// LikeCount and CommentCount are denormalized aggregates kept in sync with the
// likes and comments tables by the repositories' transactional updates.
type Post struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ID           string    `json:"id" db:"id"`
	AuthorID     string    `json:"authorId" db:"author_id"`
	ImageKey     string    `json:"imageKey" db:"image_key"`
	Caption      *string   `json:"caption,omitempty" db:"caption"`
	LikeCount    int       `json:"likeCount" db:"like_count"`
	CommentCount int       `json:"commentCount" db:"comment_count"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	AuthorID string  `json:"authorId"`
	ImageKey string  `json:"imageKey"`
	Caption  *string `json:"caption,omitempty"`
}

// FeedEntry is a post hydrated for display: image URL resolved through the
// storage gateway, author name, viewer like-state, and the most recent
// comments
type FeedEntry struct {
	CreatedAt    time.Time               `json:"createdAt"`
	ID           string                  `json:"id"`
	AuthorID     string                  `json:"authorId"`
	AuthorName   string                  `json:"authorName"`
	ImageURL     string                  `json:"imageUrl"`
	Caption      *string                 `json:"caption,omitempty"`
	LikeCount    int                     `json:"likeCount"`
	CommentCount int                     `json:"commentCount"`
	IsLiked      bool                    `json:"isLiked"`
	Comments     []*comments.CommentView `json:"comments"`
}

// AuthorPost is a post annotated with its resolved image URL, as returned by
// the author's own post listing
type AuthorPost struct {
	CreatedAt    time.Time `json:"createdAt"`
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	ImageURL     string    `json:"imageUrl"`
	Caption      *string   `json:"caption,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
}
