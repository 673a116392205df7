package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests.
type LeaveService interface {
	// Request files a new pending leave request for the caller
	Request(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// List returns the caller's records, or every record for admins
	List(ctx context.Context) ([]LeaveResponse, error)

	// Approve marks a pending request approved (admin)
	Approve(ctx context.Context, id string) (LeaveResponse, error)

	// Reject marks a pending request rejected (admin)
	Reject(ctx context.Context, id string) (LeaveResponse, error)

	// Delete removes the caller's own pending request
	Delete(ctx context.Context, id string) error
}
