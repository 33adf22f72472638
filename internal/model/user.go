package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the portal
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	RefreshToken *string   `json:"-"` // Most recent refresh token, nil when logged out
	CreatedAt    time.Time `json:"created_at"`
}

// SignupRequest is the body for self-service account creation
type SignupRequest struct {
	Name            string `json:"name" binding:"required"`
	Username        string `json:"username" binding:"required,min=4,alphanum"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is used by admins to provision accounts directly.
// Admin-created accounts are verified immediately.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=4,alphanum"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
}
