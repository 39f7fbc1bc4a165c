package dto

import (
	"time"

	"github.com/tasktrackhq/task-tracking-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummaryDTO is the compact user shape embedded in task responses
type UserSummaryDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenDTO represents an issued access token
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token TokenDTO `json:"token"`
	User  UserDTO  `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// NewAuthResponse builds the register/login response body
func NewAuthResponse(accessToken string, user models.User) AuthResponse {
	return AuthResponse{
		Token: TokenDTO{
			AccessToken: accessToken,
			TokenType:   "bearer",
		},
		User: ToUserDTO(user),
	}
}
