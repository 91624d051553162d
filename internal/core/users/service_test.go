package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*User), args.Error(1)
}

func (m *MockUserRepository) Claim(ctx context.Context, id, username, name string) (*User, error) {
	args := m.Called(ctx, id, username, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*User, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockUserRepository) ListUnclaimedPlaceholders(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func TestCreateUser_NewUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	repo.On("GetByUsername", mock.Anything, "alice").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.ID == "user-1" && u.Username == "alice" && !u.IsAnonymous
	})).Return(&User{ID: "user-1", Username: "alice"}, nil)

	created, err := service.CreateUser(context.Background(), CreateUserRequest{
		UserID:   "user-1",
		Username: "Alice", // normalized to lowercase
		Name:     "Alice Smith",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ID)
	assert.Equal(t, "alice", created.Username)
	repo.AssertExpectations(t)
}

func TestCreateUser_ClaimsPlaceholder(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	placeholder := &User{ID: "ph-1", IsAnonymous: true}
	repo.On("GetByUsername", mock.Anything, "alice").Return(placeholder, nil)
	repo.On("Claim", mock.Anything, "ph-1", "alice", "Alice Smith").
		Return(&User{ID: "ph-1", Username: "alice", Name: "Alice Smith"}, nil)

	created, err := service.CreateUser(context.Background(), CreateUserRequest{
		UserID:   "user-new",
		Username: "alice",
		Name:     "Alice Smith",
	})

	require.NoError(t, err)
	// The placeholder's identity wins: no second "alice" record is created
	assert.Equal(t, "ph-1", created.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	claimed := &User{ID: "user-1", Username: "alice", IsAnonymous: false}
	repo.On("GetByUsername", mock.Anything, "alice").Return(claimed, nil)

	_, err := service.CreateUser(context.Background(), CreateUserRequest{
		UserID:   "user-2",
		Username: "alice",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_InvalidUsername(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	cases := []struct {
		name     string
		username string
	}{
		{"empty", ""},
		{"too short", "ab"},
		{"starts with digit", "1alice"},
		{"illegal characters", "al ice!"},
		{"too long", "abcdefghijklmnopqrstuvwxyz_abcdef"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateUser(context.Background(), CreateUserRequest{
				UserID:   "user-1",
				Username: tc.username,
			})
			assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestSearchUsers_EmptyQuery(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	result, err := service.SearchUsers(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, result)
	repo.AssertNotCalled(t, "SearchByUsernamePrefix", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchUsers_NormalizesQuery(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	repo.On("SearchByUsernamePrefix", mock.Anything, "ali", 25).
		Return([]*User{{ID: "user-1", Username: "alice"}}, nil)

	result, err := service.SearchUsers(context.Background(), "  ALI ")

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "alice", result[0].Username)
	repo.AssertExpectations(t)
}

func TestClaimPlaceholders(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	placeholders := []*User{
		{ID: "11111111-2222-3333-4444-555555555555", IsAnonymous: true},
		{ID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", IsAnonymous: true},
	}
	repo.On("ListUnclaimedPlaceholders", mock.Anything).Return(placeholders, nil)
	repo.On("Claim", mock.Anything, placeholders[0].ID, mock.MatchedBy(func(u string) bool {
		return len(u) <= 30 && u[:5] == "user_"
	}), "").Return(&User{ID: placeholders[0].ID}, nil)
	repo.On("Claim", mock.Anything, placeholders[1].ID, mock.MatchedBy(func(u string) bool {
		return len(u) <= 30 && u[:5] == "user_"
	}), "").Return(&User{ID: placeholders[1].ID}, nil)

	claimed, err := service.ClaimPlaceholders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, claimed)
	repo.AssertExpectations(t)
}
