package office

import (
	"context"
)

// OfficeRepository defines data access for offices and their
// working-hours policy rows.
type OfficeRepository interface {
	Create(ctx context.Context, newOffice Office) (Office, error)
	GetByID(ctx context.Context, id string) (Office, error)

	// GetPrimary returns the single governing office. The current
	// design assumes one office; ErrOfficeNotFound when none exists.
	GetPrimary(ctx context.Context) (Office, error)

	List(ctx context.Context) ([]Office, error)
	Update(ctx context.Context, updated Office) error
	Delete(ctx context.Context, id string) error
}
