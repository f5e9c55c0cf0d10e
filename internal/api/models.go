package api

import (
	"time"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID int64 `json:"user_id"`

	// AccessToken is the bearer token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is only issued by the jwt strategy
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

// UpdateTaskRequest defines the payload for updating a task. Absent fields are
// left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TagNameRequest carries a tag name in a JSON body.
type TagNameRequest struct {
	Name string `json:"name"`
}

// TagResponse represents a tag.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskResponse represents a task with its tags.
type TaskResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Position    float64       `json:"position"`
	Completed   bool          `json:"completed"`
	Tags        []TagResponse `json:"tags"`
}

func authToResponse(pair *auth.TokenPair) AuthResponse {
	resp := AuthResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if !pair.ExpiresAt.IsZero() {
		resp.ExpiresAt = pair.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func tagToResponse(tag *domain.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

func tagsToResponse(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = tagToResponse(tag)
	}
	return resp
}

func taskToResponse(task *domain.Task) TaskResponse {
	tags := make([]TagResponse, len(task.Tags))
	for i := range task.Tags {
		tags[i] = tagToResponse(&task.Tags[i])
	}
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Position:    task.Position,
		Completed:   task.Completed,
		Tags:        tags,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		resp[i] = taskToResponse(task)
	}
	return resp
}
