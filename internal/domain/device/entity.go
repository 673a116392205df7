package device

import "time"

// Binding ties a physical device identifier to exactly one user. The
// first check-in with an unbound device creates it; it is never
// overwritten by the check-in path, only cleared by an administrator.
type Binding struct {
	DeviceID  string
	UserID    string
	CreatedAt time.Time
}
