package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByIDs retrieves multiple users in a single batch query.
	// Returns a map of ID → User; missing users are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)

	// Claim promotes an existing user record in place: assigns a username and
	// name and clears the anonymous flag. Used both when a sign-up claims a
	// placeholder and by the placeholder migration.
	Claim(ctx context.Context, id, username, name string) (*User, error)

	// SearchByUsernamePrefix performs a case-insensitive prefix match on
	// username, excluding placeholders.
	SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*User, error)

	// ListUnclaimedPlaceholders returns anonymous users that have no username
	ListUnclaimedPlaceholders(ctx context.Context) ([]*User, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	// CreateUser creates a new user, or claims a placeholder holding the
	// requested username. Returns ErrUsernameTaken if the username belongs to
	// a claimed user.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	GetUser(ctx context.Context, id string) (*User, error)

	// SearchUsers matches usernames by case-insensitive prefix. An empty
	// query returns no results.
	SearchUsers(ctx context.Context, query string) ([]*User, error)

	// ClaimPlaceholders assigns synthetic usernames to placeholder users that
	// lack one. Returns the number of users claimed.
	ClaimPlaceholders(ctx context.Context) (int, error)
}
