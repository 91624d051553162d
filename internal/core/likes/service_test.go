package likes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLikeRepo is an in-memory Repository that maintains the like-count
// invariant the same way the SQL implementation does: the like row and the
// counter always change together.
type fakeLikeRepo struct {
	posts  map[string]int             // postID -> like count
	likes  map[string]map[string]bool // postID -> set of userIDs
	events int
}

func newFakeLikeRepo(postIDs ...string) *fakeLikeRepo {
	r := &fakeLikeRepo{
		posts: make(map[string]int),
		likes: make(map[string]map[string]bool),
	}
	for _, id := range postIDs {
		r.posts[id] = 0
		r.likes[id] = make(map[string]bool)
	}
	return r
}

func (r *fakeLikeRepo) Toggle(ctx context.Context, postID, userID string) (*ToggleResult, error) {
	if _, ok := r.posts[postID]; !ok {
		return nil, ErrPostNotFound
	}
	r.events++
	if r.likes[postID][userID] {
		delete(r.likes[postID], userID)
		r.posts[postID]--
		return &ToggleResult{Liked: false, LikeCount: r.posts[postID]}, nil
	}
	r.likes[postID][userID] = true
	r.posts[postID]++
	return &ToggleResult{Liked: true, LikeCount: r.posts[postID]}, nil
}

func (r *fakeLikeRepo) ListLikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	for _, id := range postIDs {
		if r.likes[id][userID] {
			result[id] = true
		}
	}
	return result, nil
}

func (r *fakeLikeRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	return len(r.likes[postID]), nil
}

func TestToggleLike_FirstToggleLikes(t *testing.T) {
	repo := newFakeLikeRepo("post-1")
	service := NewLikeService(repo, nil, nil)

	result, err := service.ToggleLike(context.Background(), "post-1", "user-a")

	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)
}

func TestToggleLike_PairingRestoresState(t *testing.T) {
	repo := newFakeLikeRepo("post-1")
	service := NewLikeService(repo, nil, nil)
	ctx := context.Background()

	first, err := service.ToggleLike(ctx, "post-1", "user-a")
	require.NoError(t, err)
	second, err := service.ToggleLike(ctx, "post-1", "user-a")
	require.NoError(t, err)

	assert.True(t, first.Liked)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikeCount)

	liked, err := repo.ListLikedPostIDs(ctx, "user-a", []string{"post-1"})
	require.NoError(t, err)
	assert.False(t, liked["post-1"])
}

func TestToggleLike_CounterMatchesLikeRows(t *testing.T) {
	repo := newFakeLikeRepo("post-1")
	service := NewLikeService(repo, nil, nil)
	ctx := context.Background()

	// Arbitrary toggle sequence from distinct users
	sequence := []string{"a", "b", "c", "a", "b", "d", "b", "b"}
	for _, user := range sequence {
		_, err := service.ToggleLike(ctx, "post-1", user)
		require.NoError(t, err)
	}

	rows, err := repo.CountByPost(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, rows, repo.posts["post-1"],
		"denormalized counter must equal the number of like rows")
	// a: on,off  b: on,off,on,off  c: on  d: on
	assert.Equal(t, 2, rows)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	repo := newFakeLikeRepo()
	service := NewLikeService(repo, nil, nil)

	_, err := service.ToggleLike(context.Background(), "missing", "user-a")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLike_BlankPostID(t *testing.T) {
	repo := newFakeLikeRepo("post-1")
	service := NewLikeService(repo, nil, nil)

	_, err := service.ToggleLike(context.Background(), "  ", "user-a")

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Zero(t, repo.events, "repository should not be reached")
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) { c.calls++ }

func TestToggleLike_InvalidatesFeedCache(t *testing.T) {
	repo := newFakeLikeRepo("post-1")
	inv := &countingInvalidator{}
	service := NewLikeService(repo, inv, nil)

	_, err := service.ToggleLike(context.Background(), "post-1", "user-a")

	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
}
