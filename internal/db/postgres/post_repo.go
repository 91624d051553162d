package postgres

import (
	"Photostream/internal/core/posts"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post with both counters initialized to zero
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (id, author_id, image_key, caption)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, image_key, caption, like_count, comment_count, created_at`

	err := r.db.QueryRowContext(ctx, query, post.ID, post.AuthorID, post.ImageKey, post.Caption).
		Scan(&post.ID, &post.AuthorID, &post.ImageKey, &post.Caption,
			&post.LikeCount, &post.CommentCount, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a post by its identifier
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	post := &posts.Post{}
	query := `
		SELECT id, author_id, image_key, caption, like_count, comment_count, created_at
		FROM posts
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.AuthorID, &post.ImageKey, &post.Caption,
			&post.LikeCount, &post.CommentCount, &post.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// ListRecent retrieves the newest posts, creation time descending
func (r *postgresPostRepo) ListRecent(ctx context.Context, limit int) ([]*posts.Post, error) {
	query := `
		SELECT id, author_id, image_key, caption, like_count, comment_count, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	return r.listPosts(ctx, query, limit)
}

// ListByAuthor retrieves an author's posts, newest first
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*posts.Post, error) {
	query := `
		SELECT id, author_id, image_key, caption, like_count, comment_count, created_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC`

	return r.listPosts(ctx, query, authorID)
}

// Delete removes a post together with its likes and comments.
// The explicit deletes run in one transaction so a failure commits nothing;
// the FK cascades exist as a backstop but are not relied on.
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for post=%s: %w", id, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction",
				slog.String("postId", id),
				slog.String("error", err.Error()),
			)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete likes for post=%s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comments for post=%s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post=%s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for post=%s: %w", id, err)
	}
	if rowsAffected == 0 {
		return posts.ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for post=%s: %w", id, err)
	}

	return nil
}

func (r *postgresPostRepo) listPosts(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var result []*posts.Post
	for rows.Next() {
		post := &posts.Post{}
		err := rows.Scan(&post.ID, &post.AuthorID, &post.ImageKey, &post.Caption,
			&post.LikeCount, &post.CommentCount, &post.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		result = append(result, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return result, nil
}
