package identity

import (
	"time"

	"github.com/clubfinanzas/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserResponse
}

// UserResponse is a user in API responses; the password hash never leaves
// the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClubID      *uuid.UUID `json:"clubId,omitempty"`
	Email       string     `json:"email"`
	Name        string     `json:"nombre"`
	Role        string     `json:"rol"`
	Active      bool       `json:"activo"`
	SuperAdmin  bool       `json:"superAdmin"`
	LastLoginAt *time.Time `json:"ultimoAcceso,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateUserRequest creates a user in the caller's club
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"nombre" binding:"required,max=200"`
	Role     string `json:"rol" binding:"required,oneof=admin tesorero"`
}

// UpdateUserRequest changes a user's profile; an empty password keeps the
// current one.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Name     string `json:"nombre" binding:"required,max=200"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// ChangeRoleRequest assigns a new role
type ChangeRoleRequest struct {
	Role string `json:"rol" binding:"required,oneof=admin tesorero"`
}

// UserListFilter is the query string of the user list
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"rol" binding:"omitempty,oneof=admin tesorero"`
	Active   *bool  `form:"activo"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// ToUserResponse converts a domain user into its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		ClubID:      u.ClubID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role.String(),
		Active:      u.Active,
		SuperAdmin:  u.SuperAdmin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
