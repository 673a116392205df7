package employee

import "time"

// Employee is the profile behind a user account. The ID is the user's
// ID; creating an employee creates both rows in one transaction.
type Employee struct {
	ID          string
	FullName    string
	Email       string
	PhoneNumber *string
	AvatarURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	Role *string
}
