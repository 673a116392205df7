package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Events are
// insert-only; there is no update or delete path.
type EventRepository interface {
	// Create inserts a new event and returns it with its generated
	// fields populated.
	Create(ctx context.Context, event Event) (Event, error)

	// ListByUserBetween returns a user's events with from <= timestamp < to.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]Event, error)

	// ListBetween returns all users' events with from <= timestamp < to.
	ListBetween(ctx context.Context, from, to time.Time) ([]Event, error)

	// ExistsForUserBetween reports whether the user already has an
	// event of the given kind with from <= timestamp < to. Used to
	// reject duplicate check-ins/outs for a local civil day.
	ExistsForUserBetween(ctx context.Context, userID string, kind Kind, from, to time.Time) (bool, error)
}
