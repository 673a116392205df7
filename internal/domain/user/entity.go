package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages employees, offices and reports
	RoleEmployee Role = "employee" // Can check in/out and view own history
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleEmployee),
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
