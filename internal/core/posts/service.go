package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Photostream/internal/core/blobs"
	"Photostream/internal/core/comments"
	"Photostream/internal/core/users"

	"github.com/google/uuid"
)

const (
	// feedLimit caps the global feed at the newest posts
	feedLimit = 50

	// feedCommentLimit is how many recent comments each feed entry carries.
	// The full set is available via the comments endpoint.
	feedCommentLimit = 3

	// maxCaptionLength bounds post captions
	maxCaptionLength = 500
)

type postService struct {
	postRepo    Repository
	commentRepo comments.Repository
	userRepo    users.UserRepository
	likeReader  LikeReader
	gateway     blobs.Gateway
	cache       RecentPostCache
	logger      *slog.Logger
}

// NewPostService creates a new post service. cache may be nil to disable
// feed caching.
func NewPostService(
	postRepo Repository,
	commentRepo comments.Repository,
	userRepo users.UserRepository,
	likeReader LikeReader,
	gateway blobs.Gateway,
	cache RecentPostCache,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		likeReader:  likeReader,
		gateway:     gateway,
		cache:       cache,
		logger:      logger,
	}
}

// CreatePost inserts a post after verifying the image blob actually exists
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.AuthorID) == "" {
		return nil, NewValidationError("authorId", "author ID is required")
	}
	if strings.TrimSpace(req.ImageKey) == "" {
		return nil, NewValidationError("imageKey", "image key is required")
	}
	if req.Caption != nil && len(*req.Caption) > maxCaptionLength {
		return nil, NewValidationError("caption",
			fmt.Sprintf("caption must not exceed %d characters", maxCaptionLength))
	}

	// A dangling image reference is a validation failure: the client claims
	// an upload it never completed
	if _, err := s.gateway.Resolve(ctx, req.ImageKey); err != nil {
		if errors.Is(err, blobs.ErrBlobNotFound) {
			return nil, NewValidationError("imageKey", "image not found in storage")
		}
		return nil, fmt.Errorf("failed to resolve image: %w", err)
	}

	post := &Post{
		ID:       uuid.NewString(),
		AuthorID: req.AuthorID,
		ImageKey: req.ImageKey,
		Caption:  req.Caption,
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("post created",
		slog.String("postId", created.ID),
		slog.String("authorId", created.AuthorID))

	return created, nil
}

// GetFeed assembles the global feed. For each post it resolves the display
// image URL, the author name (falling back to the raw author ID when the user
// record is missing), the viewer's like-state, and the most recent comments.
func (s *postService) GetFeed(ctx context.Context, viewerID string) ([]*FeedEntry, error) {
	postPage, err := s.recentPosts(ctx)
	if err != nil {
		return nil, err
	}

	// Per-post recent comments, collected before the author lookup so post
	// and comment authors resolve in a single batch
	recentComments := make(map[string][]*comments.Comment, len(postPage))
	authorIDs := make([]string, 0, len(postPage))
	seen := make(map[string]bool)
	collect := func(id string) {
		if !seen[id] {
			seen[id] = true
			authorIDs = append(authorIDs, id)
		}
	}

	for _, p := range postPage {
		collect(p.AuthorID)
		cs, err := s.commentRepo.ListRecentByPost(ctx, p.ID, feedCommentLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load comments for post %s: %w", p.ID, err)
		}
		recentComments[p.ID] = cs
		for _, c := range cs {
			collect(c.UserID)
		}
	}

	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}

	liked := map[string]bool{}
	if viewerID != "" {
		postIDs := make([]string, len(postPage))
		for i, p := range postPage {
			postIDs[i] = p.ID
		}
		liked, err = s.likeReader.ListLikedPostIDs(ctx, viewerID, postIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve like state: %w", err)
		}
	}

	feed := make([]*FeedEntry, 0, len(postPage))
	for _, p := range postPage {
		imageURL, err := s.resolveImageURL(ctx, p)
		if err != nil {
			return nil, err
		}

		commentViews := make([]*comments.CommentView, 0, len(recentComments[p.ID]))
		for _, c := range recentComments[p.ID] {
			commentViews = append(commentViews, &comments.CommentView{
				CreatedAt:  c.CreatedAt,
				ID:         c.ID,
				PostID:     c.PostID,
				UserID:     c.UserID,
				AuthorName: displayName(authors[c.UserID], c.UserID),
				Text:       c.Text,
			})
		}

		feed = append(feed, &FeedEntry{
			CreatedAt:    p.CreatedAt,
			ID:           p.ID,
			AuthorID:     p.AuthorID,
			AuthorName:   displayName(authors[p.AuthorID], p.AuthorID),
			ImageURL:     imageURL,
			Caption:      p.Caption,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			IsLiked:      liked[p.ID],
			Comments:     commentViews,
		})
	}

	return feed, nil
}

// GetMyPosts returns the author's posts, newest first, with resolved image URLs
func (s *postService) GetMyPosts(ctx context.Context, authorID string) ([]*AuthorPost, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, NewValidationError("authorId", "author ID is required")
	}

	postList, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := make([]*AuthorPost, 0, len(postList))
	for _, p := range postList {
		imageURL, err := s.resolveImageURL(ctx, p)
		if err != nil {
			return nil, err
		}
		result = append(result, &AuthorPost{
			CreatedAt:    p.CreatedAt,
			ID:           p.ID,
			AuthorID:     p.AuthorID,
			ImageURL:     imageURL,
			Caption:      p.Caption,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
		})
	}

	return result, nil
}

// DeletePost removes a post owned by the requester, cascading its likes and
// comments. The stored image blob is removed best-effort afterwards.
func (s *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return ErrNotAuthorized
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	// The database row is gone; an orphaned blob is not worth failing over
	if err := s.gateway.Remove(ctx, post.ImageKey); err != nil {
		s.logger.Warn("failed to remove image blob",
			slog.String("postId", postID),
			slog.String("imageKey", post.ImageKey),
			slog.String("error", err.Error()))
	}

	s.logger.Info("post deleted",
		slog.String("postId", postID),
		slog.String("authorId", requesterID))

	return nil
}

// resolveImageURL resolves a post's display URL. A blob that has since gone
// missing renders as an empty URL instead of failing the whole listing.
func (s *postService) resolveImageURL(ctx context.Context, p *Post) (string, error) {
	imageURL, err := s.gateway.Resolve(ctx, p.ImageKey)
	if errors.Is(err, blobs.ErrBlobNotFound) {
		s.logger.Warn("image blob missing for post",
			slog.String("postId", p.ID),
			slog.String("imageKey", p.ImageKey))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve image for post %s: %w", p.ID, err)
	}
	return imageURL, nil
}

func (s *postService) recentPosts(ctx context.Context) ([]*Post, error) {
	if s.cache != nil {
		if postPage, ok := s.cache.GetRecent(ctx); ok {
			return postPage, nil
		}
	}

	postPage, err := s.postRepo.ListRecent(ctx, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}

	if s.cache != nil {
		s.cache.SetRecent(ctx, postPage)
	}

	return postPage, nil
}

func displayName(u *users.User, fallbackID string) string {
	if u == nil || u.Username == "" {
		return fallbackID
	}
	return u.Username
}
