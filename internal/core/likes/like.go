package likes

import (
	"time"
)

// Like represents a single user's like on a post.
// At most one live Like exists per (user, post) pair, enforced by a unique
// constraint rather than lookup-before-insert.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
}

// ToggleResult reports the state of the (user, post) pair after a toggle
type ToggleResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
