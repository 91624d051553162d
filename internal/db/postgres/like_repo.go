package postgres

import (
	"Photostream/internal/core/likes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Toggle flips the like state for (userID, postID) and adjusts the post's
// like counter in the same transaction.
//
// The post row is locked with FOR UPDATE first, which doubles as the
// existence check and serializes concurrent toggles on the same post: the
// counter update and the like insert/delete always commit together, so
// like_count can never drift from the number of like rows. The unique
// (user_id, post_id) constraint closes the same-user double-toggle race.
func (r *postgresLikeRepo) Toggle(ctx context.Context, postID, userID string) (*likes.ToggleResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction for post=%s: %w", postID, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction",
				slog.String("postId", postID),
				slog.String("error", err.Error()),
			)
		}
	}()

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).
		Scan(&lockedID)
	if err == sql.ErrNoRows {
		return nil, likes.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock post=%s: %w", postID, err)
	}

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID).
		Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}

	result := &likes.ToggleResult{}

	if err == sql.ErrNoRows {
		// not-liked -> liked
		_, err = tx.ExecContext(ctx,
			`INSERT INTO likes (id, post_id, user_id) VALUES ($1, $2, $3)`,
			uuid.NewString(), postID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert like: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE posts SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`,
			postID).Scan(&result.LikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to increment like count: %w", err)
		}
		result.Liked = true
	} else {
		// liked -> not-liked
		_, err = tx.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, existingID)
		if err != nil {
			return nil, fmt.Errorf("failed to delete like: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE posts SET like_count = like_count - 1 WHERE id = $1 RETURNING like_count`,
			postID).Scan(&result.LikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement like count: %w", err)
		}
		result.Liked = false
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit toggle for post=%s: %w", postID, err)
	}

	return result, nil
}

// ListLikedPostIDs reports which of the given posts the user currently likes
func (r *postgresLikeRepo) ListLikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	query := `SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query liked posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		var postID string
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("failed to scan like row: %w", err)
		}
		result[postID] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating like rows: %w", err)
	}

	return result, nil
}

// CountByPost returns the number of live likes referencing a post
func (r *postgresLikeRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
