package office

import (
	"context"
)

// OfficeService defines business logic for office administration.
type OfficeService interface {
	// Create registers a new office with its geofence and policy
	Create(ctx context.Context, req OfficeRequest) (OfficeResponse, error)

	// Get retrieves a single office by ID
	Get(ctx context.Context, id string) (OfficeResponse, error)

	// GetPrimary retrieves the governing office for check-ins
	GetPrimary(ctx context.Context) (OfficeResponse, error)

	// List retrieves all registered offices
	List(ctx context.Context) ([]OfficeResponse, error)

	// Update replaces an office's configuration
	Update(ctx context.Context, id string, req OfficeRequest) (OfficeResponse, error)

	// Delete removes an office
	Delete(ctx context.Context, id string) error
}
