package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Photostream/internal/core/users"

	"github.com/google/uuid"
)

// maxCommentLength is the maximum length for comment text in characters
const maxCommentLength = 2000

type commentService struct {
	commentRepo Repository
	userRepo    users.UserRepository
	invalidator FeedInvalidator
	logger      *slog.Logger
}

// NewCommentService creates a new comment service.
// The user repository is needed to hydrate author names on reads; invalidator
// may be nil when no feed cache is configured.
func NewCommentService(commentRepo Repository, userRepo users.UserRepository, invalidator FeedInvalidator, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// AddComment creates a comment and increments the post's comment counter
func (s *commentService) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, NewValidationError("text", "comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, NewValidationError("text",
			fmt.Sprintf("comment must not exceed %d characters", maxCommentLength))
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, NewValidationError("userId", "user ID is required")
	}

	comment := &Comment{
		ID:     uuid.NewString(),
		PostID: req.PostID,
		UserID: req.UserID,
		Text:   text,
	}

	created, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	s.logger.Info("comment added",
		slog.String("commentId", created.ID),
		slog.String("postId", created.PostID))

	return created, nil
}

// GetComments returns every comment on a post, newest first, with author
// display names resolved in one batch lookup
func (s *commentService) GetComments(ctx context.Context, postID string) ([]*CommentView, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrPostNotFound
	}

	commentList, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return s.buildViews(ctx, commentList)
}

// buildViews hydrates comments with author display names. A missing user
// record falls back to the raw author ID so the comment still renders.
func (s *commentService) buildViews(ctx context.Context, commentList []*Comment) ([]*CommentView, error) {
	authorIDs := make([]string, 0, len(commentList))
	seen := make(map[string]bool, len(commentList))
	for _, c := range commentList {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment authors: %w", err)
	}

	views := make([]*CommentView, 0, len(commentList))
	for _, c := range commentList {
		views = append(views, &CommentView{
			CreatedAt:  c.CreatedAt,
			ID:         c.ID,
			PostID:     c.PostID,
			UserID:     c.UserID,
			AuthorName: authorDisplayName(authors[c.UserID], c.UserID),
			Text:       c.Text,
		})
	}

	return views, nil
}

func authorDisplayName(u *users.User, fallbackID string) string {
	if u == nil {
		return fallbackID
	}
	if u.Username != "" {
		return u.Username
	}
	return fallbackID
}
