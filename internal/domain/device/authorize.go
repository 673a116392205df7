package device

import (
	"context"
	"fmt"
)

// Authorize enforces the one-device-per-employee policy for a check-in
// attempt. An empty device id skips the check entirely; the id is
// optional metadata. A user's first device is bound on first use; after
// that the same device must be presented, and a device bound to someone
// else is always refused. Calling it again with the same pair is a
// no-op, so a caller may safely retry after a downstream failure.
func Authorize(ctx context.Context, repo BindingRepository, userID, deviceID string) error {
	if deviceID == "" {
		return nil
	}

	existing, err := repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("failed to look up device binding: %w", err)
	}
	if existing != nil && existing.UserID != userID {
		return ErrBoundToOtherUser
	}

	mine, err := repo.ListByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list user device bindings: %w", err)
	}
	if len(mine) > 0 {
		for _, b := range mine {
			if b.DeviceID == deviceID {
				return nil
			}
		}
		return ErrUnrecognizedDevice
	}

	// First use: bind-if-absent, then check who actually won in case a
	// concurrent attempt bound the device first.
	won, err := repo.BindIfAbsent(ctx, deviceID, userID)
	if err != nil {
		return fmt.Errorf("failed to bind device: %w", err)
	}
	if won.UserID != userID {
		return ErrBoundToOtherUser
	}

	return nil
}
