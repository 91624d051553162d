package likes

import (
	"context"
	"log/slog"
	"strings"
)

type likeService struct {
	likeRepo    Repository
	invalidator FeedInvalidator
	logger      *slog.Logger
}

// NewLikeService creates a new like service. invalidator may be nil when no
// feed cache is configured.
func NewLikeService(likeRepo Repository, invalidator FeedInvalidator, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &likeService{
		likeRepo:    likeRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// ToggleLike flips the like state for (userID, postID).
// Two sequential calls always return the pair to its original state and
// restore the original counter value.
func (s *likeService) ToggleLike(ctx context.Context, postID, userID string) (*ToggleResult, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrPostNotFound
	}

	result, err := s.likeRepo.Toggle(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	s.logger.Debug("like toggled",
		slog.String("postId", postID),
		slog.String("userId", userID),
		slog.Bool("liked", result.Liked),
		slog.Int("likeCount", result.LikeCount))

	return result, nil
}
