package attendance

import (
	"time"

	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
)

type Kind string

const (
	KindCheckIn  Kind = "check-in"
	KindCheckOut Kind = "check-out"
)

type Status string

const (
	StatusOnTime         Status = "on-time"
	StatusLate           Status = "late"
	StatusAbsent         Status = "absent"
	StatusEarlyDeparture Status = "early-departure"
)

// Event is one immutable check-in or check-out record. The engine never
// updates or deletes events; corrections are an administrative concern
// on the store.
type Event struct {
	ID             string
	UserID         string
	Kind           Kind
	Timestamp      time.Time // absolute instant, stored UTC
	Coordinates    geo.Coordinate
	DistanceMeters int     // from office center, rounded for storage
	DeviceID       *string
	Status         *Status // set on check-in; early-departure on check-out
	CreatedAt      time.Time
}

// DayRecord is a derived per-day view of a user's attendance. It is
// rebuilt from the event log on every query and never persisted.
type DayRecord struct {
	Date        time.Time // midnight in the office's local civil time
	Events      []Event
	Status      Status
	HoursWorked *float64 // nil unless both legs of the day are present
}
