package users

import (
	"time"
)

// User represents an account in the Photostream database.
// A placeholder user (IsAnonymous=true, empty Username) is created lazily and
// later claimed by a real sign-up.
type User struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	ID          string    `json:"id" db:"id"`
	Username    string    `json:"username,omitempty" db:"username"`
	Name        string    `json:"name,omitempty" db:"name"`
	Email       string    `json:"email,omitempty" db:"email"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
}

// CreateUserRequest represents the input for creating a new user or claiming
// an existing placeholder
type CreateUserRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}
