package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn validates and records an employee check-in attempt
	CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error)

	// CheckOut validates and records an employee check-out attempt
	CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error)

	// GetToday returns the authenticated user's events for the current
	// local civil day
	GetToday(ctx context.Context) ([]EventResponse, error)

	// GetHistory synthesizes the month's day-by-day records for the
	// authenticated user (or filter.UserID for administrators)
	GetHistory(ctx context.Context, filter MonthFilter) ([]DayRecordResponse, error)

	// ListMonthEvents returns every user's raw events for a month
	// (administrators only; enforced by routing)
	ListMonthEvents(ctx context.Context, filter MonthFilter) ([]EventResponse, error)
}
