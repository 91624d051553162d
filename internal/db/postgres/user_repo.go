package postgres

import (
	"Photostream/internal/core/users"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
)

// MaxBatchSize caps batch user lookups to keep queries bounded
const MaxBatchSize = 1000

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, username, name, email, is_anonymous)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, nullable(user.Username), nullable(user.Name), nullable(user.Email), user.IsAnonymous).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Check for unique constraint violations
		if strings.Contains(err.Error(), "duplicate key") {
			if strings.Contains(err.Error(), "users_pkey") {
				return nil, fmt.Errorf("user with ID already exists")
			}
			if strings.Contains(err.Error(), "users_username_key") {
				return nil, users.ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their identifier
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, username, name, email, is_anonymous, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by their username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	query := `
		SELECT id, username, name, email, is_anonymous, created_at, updated_at
		FROM users
		WHERE lower(username) = lower($1)`

	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// GetByIDs retrieves multiple users in a single query.
// Missing users are not included in the result map.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	result := make(map[string]*users.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(ids), MaxBatchSize)
	}

	query := `
		SELECT id, username, name, email, is_anonymous, created_at, updated_at
		FROM users
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by IDs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		result[user.ID] = user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}

// Claim promotes a user record in place: assigns username and name and clears
// the anonymous flag
func (r *postgresUserRepo) Claim(ctx context.Context, id, username, name string) (*users.User, error) {
	query := `
		UPDATE users
		SET username = $2, name = $3, is_anonymous = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, name, email, is_anonymous, created_at, updated_at`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id, username, nullable(name)))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "users_username_key") {
			return nil, users.ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// SearchByUsernamePrefix performs a case-insensitive prefix match on
// username, excluding placeholders. Backed by the lower(username) index.
func (r *postgresUserRepo) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*users.User, error) {
	// Escape LIKE metacharacters so a literal % or _ in the query cannot
	// widen the match
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(prefix))

	query := `
		SELECT id, username, name, email, is_anonymous, created_at, updated_at
		FROM users
		WHERE is_anonymous = false AND lower(username) LIKE $1
		ORDER BY username
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, escaped+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var result []*users.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}

// ListUnclaimedPlaceholders returns anonymous users with no username
func (r *postgresUserRepo) ListUnclaimedPlaceholders(ctx context.Context) ([]*users.User, error) {
	query := `
		SELECT id, username, name, email, is_anonymous, created_at, updated_at
		FROM users
		WHERE is_anonymous = true AND username IS NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list placeholder users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var result []*users.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresUserRepo) scanUser(row *sql.Row) (*users.User, error) {
	user, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*users.User, error) {
	user := &users.User{}
	var username, name, email sql.NullString

	err := row.Scan(&user.ID, &username, &name, &email, &user.IsAnonymous,
		&user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}

	user.Username = username.String
	user.Name = name.String
	user.Email = email.String

	return user, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
