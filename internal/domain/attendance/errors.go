package attendance

import (
	"errors"
	"fmt"

	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
)

// Attendance domain errors
var (
	ErrLocationUnavailable = errors.New("unable to get your current location")
	ErrOfficeNotConfigured = errors.New("office location not loaded")
	ErrAlreadyCheckedIn    = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut   = errors.New("you have already checked out today")
	ErrNotCheckedIn        = errors.New("you have not checked in yet")
	ErrEventNotFound       = errors.New("attendance record not found")
)

// OutOfGeofenceError carries the measured distance so callers can tell
// the employee how far away they are.
type OutOfGeofenceError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutOfGeofenceError) Error() string {
	return fmt.Sprintf("you are %s away from the office; you must be within %s to check in",
		geo.FormatDistance(e.DistanceMeters), geo.FormatDistance(e.RadiusMeters))
}
