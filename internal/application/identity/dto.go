package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
)

// LoginRequest is the request to authenticate a user
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the issued tokens and user profile after login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenRequest is the request to exchange a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult carries the newly issued token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordRequest is the request to change the current user's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// RegisterUserRequest is the request to register a staff member
type RegisterUserRequest struct {
	Username      string     `json:"username" binding:"required,min=3,max=100"`
	Email         string     `json:"email" binding:"required,email"`
	Password      string     `json:"password" binding:"required,min=8"`
	FirstName     string     `json:"first_name" binding:"max=100"`
	LastName      string     `json:"last_name" binding:"max=100"`
	ContactNumber string     `json:"contact_number" binding:"max=30"`
	Role          string     `json:"role" binding:"required,oneof=admin manager cashier"`
	BranchID      *uuid.UUID `json:"branch_id"`
}

// UserListFilter narrows user listings
type UserListFilter struct {
	Search   string     `form:"search"`
	Role     string     `form:"role" binding:"omitempty,oneof=admin manager cashier"`
	BranchID *uuid.UUID `form:"branch_id"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// UserInfo is the API representation of a user
type UserInfo struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FullName        string     `json:"full_name"`
	ContactNumber   string     `json:"contact_number,omitempty"`
	Role            string     `json:"role"`
	BranchID        *uuid.UUID `json:"branch_id,omitempty"`
	CurrentBranchID *uuid.UUID `json:"current_branch_id,omitempty"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToUserInfo converts a domain user to its API representation
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FullName:        user.FullName(),
		ContactNumber:   user.ContactNumber,
		Role:            string(user.Role),
		BranchID:        user.BranchID,
		CurrentBranchID: user.CurrentBranchID,
		IsActive:        user.IsActive,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserInfos converts a slice of domain users
func ToUserInfos(users []identity.User) []UserInfo {
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = ToUserInfo(&users[i])
	}
	return infos
}
