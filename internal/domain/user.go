package domain

import "time"

// Role separates regular users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain model for accounts that own resumes and positions.
// PasswordHash is only populated on credential lookups; safe projections
// leave it empty.
type User struct {
	ID           int64
	Username     string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
