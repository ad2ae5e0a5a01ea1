package dto

import "github.com/denizatik/edutrack/internal/app/models"

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=64"`
	Password string          `json:"password" binding:"required,min=8,max=128"`
	RoleType models.RoleType `json:"roleType" binding:"required"`
}

// UserResponse represents user data returned to clients
type UserResponse struct {
	ID       int64           `json:"id" example:"1"`
	Username string          `json:"username" example:"mrs.yilmaz"`
	RoleType models.RoleType `json:"roleType" example:"TEACHER"`
}

// TokenResponse represents the access token response for /token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"bearer"`
	ExpiresIn int    `json:"expiresIn" example:"1800"` // seconds
}

// NewUserResponse converts a user model to its response DTO
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		RoleType: user.RoleType,
	}
}
