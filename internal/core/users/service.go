package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Usernames must start with a letter and contain only lowercase letters,
// digits, and underscores
var usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	maxSearchLimit = 25
)

type userService struct {
	userRepo UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a new user with unique-username enforcement.
// If a placeholder user already holds the requested username-less slot, it is
// claimed in place rather than duplicated; the placeholder's ID wins over the
// requested one.
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := s.validateCreateRequest(&req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	if existing != nil {
		if !existing.IsAnonymous {
			return nil, ErrUsernameTaken
		}
		// Claim the placeholder in place instead of inserting a duplicate
		claimed, err := s.userRepo.Claim(ctx, existing.ID, req.Username, req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to claim placeholder user: %w", err)
		}
		s.logger.Info("placeholder user claimed",
			slog.String("userId", claimed.ID),
			slog.String("username", claimed.Username))
		return claimed, nil
	}

	user := &User{
		ID:          req.UserID,
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		IsAnonymous: false,
	}

	// Repository maps the unique constraint to ErrUsernameTaken, which also
	// covers two sign-ups racing the availability check above
	return s.userRepo.Create(ctx, user)
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("userId", "user ID is required")
	}
	return s.userRepo.GetByID(ctx, id)
}

// SearchUsers performs a server-side prefix search on usernames
func (s *userService) SearchUsers(ctx context.Context, query string) ([]*User, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []*User{}, nil
	}

	return s.userRepo.SearchByUsernamePrefix(ctx, query, maxSearchLimit)
}

// ClaimPlaceholders assigns a synthetic username to every placeholder user
// that lacks one, so they can appear in search and author views
func (s *userService) ClaimPlaceholders(ctx context.Context) (int, error) {
	placeholders, err := s.userRepo.ListUnclaimedPlaceholders(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list placeholder users: %w", err)
	}

	claimed := 0
	for _, u := range placeholders {
		synthetic := "user_" + strings.ReplaceAll(u.ID, "-", "")
		if len(synthetic) > maxUsernameLen {
			synthetic = synthetic[:maxUsernameLen]
		}
		if _, err := s.userRepo.Claim(ctx, u.ID, synthetic, u.Name); err != nil {
			return claimed, fmt.Errorf("failed to claim placeholder %s: %w", u.ID, err)
		}
		claimed++
	}

	return claimed, nil
}

func (s *userService) validateCreateRequest(req *CreateUserRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Name = strings.TrimSpace(req.Name)

	if req.UserID == "" {
		return NewValidationError("userId", "user ID is required")
	}
	if req.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(req.Username) < minUsernameLen || len(req.Username) > maxUsernameLen {
		return NewValidationError("username",
			fmt.Sprintf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if !usernameRegex.MatchString(req.Username) {
		return NewValidationError("username",
			"username must start with a letter and contain only lowercase letters, digits, and underscores")
	}

	return nil
}
