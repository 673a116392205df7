package device

import (
	"context"
)

// BindingRepository defines data access for device bindings.
type BindingRepository interface {
	// GetByDeviceID returns the binding for a device, or (nil, nil)
	// when the device is unbound.
	GetByDeviceID(ctx context.Context, deviceID string) (*Binding, error)

	// ListByUserID returns all bindings held by a user.
	ListByUserID(ctx context.Context, userID string) ([]Binding, error)

	// BindIfAbsent creates the binding unless the device is already
	// bound, and returns the binding that holds after the call. The
	// insert must be atomic so two concurrent first check-ins cannot
	// both win.
	BindIfAbsent(ctx context.Context, deviceID, userID string) (Binding, error)

	// ClearForUser removes all of a user's bindings. This is the
	// administrator re-provisioning path, never a check-in side effect.
	ClearForUser(ctx context.Context, userID string) error
}
