package postgres

import (
	"Photostream/internal/core/comments"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a comment and increments the post's comment counter in the
// same transaction, so the counter never drifts from the comment rows
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) (*comments.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction for post=%s: %w", comment.PostID, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction",
				slog.String("postId", comment.PostID),
				slog.String("error", err.Error()),
			)
		}
	}()

	query := `
		INSERT INTO comments (id, post_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, user_id, text, created_at`

	err = tx.QueryRowContext(ctx, query, comment.ID, comment.PostID, comment.UserID, comment.Text).
		Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Text, &comment.CreatedAt)
	if err != nil {
		// The FK to posts rejects comments on missing posts
		if strings.Contains(err.Error(), "comments_post_id_fkey") {
			return nil, comments.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, comment.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment comment count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, comments.ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit comment for post=%s: %w", comment.PostID, err)
	}

	return comment, nil
}

// ListByPost retrieves all comments on a post, newest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC`

	return r.listComments(ctx, query, postID)
}

// ListRecentByPost retrieves the most recent comments on a post
func (r *postgresCommentRepo) ListRecentByPost(ctx context.Context, postID string, limit int) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	return r.listComments(ctx, query, postID, limit)
}

// CountByPost returns the number of live comments referencing a post
func (r *postgresCommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

func (r *postgresCommentRepo) listComments(ctx context.Context, query string, args ...interface{}) ([]*comments.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var result []*comments.Comment
	for rows.Next() {
		comment := &comments.Comment{}
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Text, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		result = append(result, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return result, nil
}
