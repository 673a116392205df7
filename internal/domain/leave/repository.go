package leave

import (
	"context"
)

type LeaveRepository interface {
	Create(ctx context.Context, record LeaveRecord) (LeaveRecord, error)
	GetByID(ctx context.Context, id string) (LeaveRecord, error)

	// List returns records ordered by start date descending; an empty
	// userID means all users.
	List(ctx context.Context, userID string) ([]LeaveRecord, error)

	UpdateStatus(ctx context.Context, id string, status LeaveStatus) error
	Delete(ctx context.Context, id string) error
}
