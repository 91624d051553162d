package user

import (
	"Photostream/internal/core/users"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockUserService implements users.UserService for testing
type mockUserService struct {
	createFunc func(ctx context.Context, req users.CreateUserRequest) (*users.User, error)
	searchFunc func(ctx context.Context, query string) ([]*users.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &users.User{ID: req.UserID, Username: req.Username, Name: req.Name}, nil
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*users.User, error) {
	return nil, users.ErrUserNotFound
}

func (m *mockUserService) SearchUsers(ctx context.Context, query string) ([]*users.User, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockUserService) ClaimPlaceholders(ctx context.Context) (int, error) {
	return 0, nil
}

// mockTokenIssuer implements TokenIssuer for testing
type mockTokenIssuer struct {
	issueFunc func(userID, name string) (string, error)
}

func (m *mockTokenIssuer) IssueToken(userID, name string) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(userID, name)
	}
	return "test-token", nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newCreateUserRequest(t *testing.T, input CreateUserInput) *http.Request {
	t.Helper()
	bodyBytes, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateUserHandler_Success(t *testing.T) {
	var issuedFor string
	mockService := &mockUserService{}
	issuer := &mockTokenIssuer{
		issueFunc: func(userID, name string) (string, error) {
			issuedFor = userID
			return "signed-token", nil
		},
	}
	handler := NewCreateUserHandler(mockService, issuer)

	req := newCreateUserRequest(t, CreateUserInput{Username: "alice", Name: "Alice"})
	w := httptest.NewRecorder()
	handler.HandleCreateUser(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response struct {
		User  *users.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Token != "signed-token" {
		t.Errorf("Expected token signed-token, got %s", response.Token)
	}
	if response.User == nil || response.User.Username != "alice" {
		t.Errorf("Expected user alice, got %+v", response.User)
	}
	if issuedFor != response.User.ID {
		t.Errorf("Token issued for %s but user ID is %s", issuedFor, response.User.ID)
	}
}

func TestCreateUserHandler_UsernameTaken(t *testing.T) {
	mockService := &mockUserService{
		createFunc: func(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
			return nil, users.ErrUsernameTaken
		},
	}
	handler := NewCreateUserHandler(mockService, &mockTokenIssuer{})

	req := newCreateUserRequest(t, CreateUserInput{Username: "alice"})
	w := httptest.NewRecorder()
	handler.HandleCreateUser(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d. Body: %s", w.Code, w.Body.String())
	}

	var errResp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "UsernameTaken" {
		t.Errorf("Expected error UsernameTaken, got %s", errResp.Error)
	}
}

func TestCreateUserHandler_InvalidUsername(t *testing.T) {
	mockService := &mockUserService{
		createFunc: func(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
			return nil, users.NewValidationError("username", "username must be at least 3 characters")
		},
	}
	handler := NewCreateUserHandler(mockService, &mockTokenIssuer{})

	req := newCreateUserRequest(t, CreateUserInput{Username: "ab"})
	w := httptest.NewRecorder()
	handler.HandleCreateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}

	var errResp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "InvalidRequest" {
		t.Errorf("Expected error InvalidRequest, got %s", errResp.Error)
	}
}

func TestCreateUserHandler_MissingUsername(t *testing.T) {
	handler := NewCreateUserHandler(&mockUserService{}, &mockTokenIssuer{})

	req := newCreateUserRequest(t, CreateUserInput{Name: "Alice"})
	w := httptest.NewRecorder()
	handler.HandleCreateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestCreateUserHandler_InvalidJSON(t *testing.T) {
	handler := NewCreateUserHandler(&mockUserService{}, &mockTokenIssuer{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("{invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.HandleCreateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}

	var errResp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "InvalidRequest" {
		t.Errorf("Expected error InvalidRequest, got %s", errResp.Error)
	}
}
