package models

import "time"

// Roles a directory entry can hold.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the known directory roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleMentor || role == RoleAdmin
}

// User represents a directory entry: a student, mentor, or admin
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Password     string    `json:"-" db:"password_hash"` // Never expose in JSON
	Role         string    `json:"role" db:"role"`
	ProfilePhoto *string   `json:"profilePhoto,omitempty" db:"profile_photo"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserResponse is what we send to clients (without sensitive data)
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	ProfilePhoto *string   `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSearchResult is the read-only projection returned by recipient search.
type UserSearchResult struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
		CreatedAt:    u.CreatedAt,
	}
}

// ToSearchResult converts User to the search projection.
func (u *User) ToSearchResult() UserSearchResult {
	return UserSearchResult{
		ID:           u.ID,
		Name:         u.Name,
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
	}
}
