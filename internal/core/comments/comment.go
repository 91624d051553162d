package comments

import (
	"time"
)

// Comment represents a comment on a post. Comments are immutable once created.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
}

// CommentView is a comment hydrated with its author's display name for
// rendering in feeds and comment lists
type CommentView struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
}

// AddCommentRequest contains parameters for creating a comment
type AddCommentRequest struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
	Text   string `json:"text"`
}
