package attendance

import (
	"time"

	"github.com/silabu/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest carries the client's current position. Latitude and
// longitude are pointers so an absent coordinate is distinguishable
// from zero (a real place in the Gulf of Guinea).
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DeviceID  string   `json:"device_id,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DeviceID  string   `json:"device_id,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

func validateCoordinates(lat, lon *float64) error {
	var errs validator.ValidationErrors

	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lon != nil && !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Kind           string  `json:"kind"`
	Timestamp      string  `json:"timestamp"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistanceMeters int     `json:"distance_meters"`
	DeviceID       *string `json:"device_id,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// ToEventResponse converts an Event entity to its wire form.
func ToEventResponse(ev Event) EventResponse {
	var status *string
	if ev.Status != nil {
		s := string(*ev.Status)
		status = &s
	}

	return EventResponse{
		ID:             ev.ID,
		UserID:         ev.UserID,
		Kind:           string(ev.Kind),
		Timestamp:      ev.Timestamp.UTC().Format(time.RFC3339),
		Latitude:       ev.Coordinates.Latitude,
		Longitude:      ev.Coordinates.Longitude,
		DistanceMeters: ev.DistanceMeters,
		DeviceID:       ev.DeviceID,
		Status:         status,
	}
}

type DayRecordResponse struct {
	Date        string          `json:"date"`
	Events      []EventResponse `json:"events"`
	Status      string          `json:"status"`
	HoursWorked *float64        `json:"hours_worked,omitempty"`
}

// ToDayRecordResponse converts a derived DayRecord to its wire form.
func ToDayRecordResponse(rec DayRecord) DayRecordResponse {
	events := make([]EventResponse, 0, len(rec.Events))
	for _, ev := range rec.Events {
		events = append(events, ToEventResponse(ev))
	}

	return DayRecordResponse{
		Date:        rec.Date.Format("2006-01-02"),
		Events:      events,
		Status:      string(rec.Status),
		HoursWorked: rec.HoursWorked,
	}
}

// MonthFilter selects a calendar month of history.
type MonthFilter struct {
	Month int `json:"month"` // 1-based
	Year  int `json:"year"`

	// UserID is honored for administrators listing another user's
	// history; empty means the authenticated user.
	UserID string `json:"user_id,omitempty"`
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Year < 2000 || f.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
