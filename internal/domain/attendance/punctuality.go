package attendance

import (
	"time"

	"github.com/silabu/attendance-backend-go/internal/domain/office"
)

// ClassifyPunctuality decides on-time vs late for a check-in instant
// against that day's working-hours start, in the office's local civil
// time. The grace deadline is inclusive: a check-in at exactly
// start+grace is still on time.
//
// Both the live check-in path and calendar reconstruction classify
// through this function, so the two can never drift apart.
func ClassifyPunctuality(checkIn time.Time, start office.ClockTime, graceMinutes int, loc *time.Location) Status {
	local := checkIn.In(loc)

	scheduledStart := time.Date(
		local.Year(), local.Month(), local.Day(),
		start.Hour, start.Minute, 0, 0,
		loc,
	)

	graceDeadline := scheduledStart.Add(time.Duration(graceMinutes) * time.Minute)

	if local.After(graceDeadline) {
		return StatusLate
	}
	return StatusOnTime
}

// IsEarlyDeparture reports whether a check-out instant precedes that
// day's configured end of working hours in the office's local time.
func IsEarlyDeparture(checkOut time.Time, end office.ClockTime, loc *time.Location) bool {
	local := checkOut.In(loc)

	scheduledEnd := time.Date(
		local.Year(), local.Month(), local.Day(),
		end.Hour, end.Minute, 0, 0,
		loc,
	)

	return local.Before(scheduledEnd)
}
