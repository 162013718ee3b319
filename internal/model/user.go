package model

import "time"

// Roles assignable to a user account.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	ProviderID   string    `json:"-"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
