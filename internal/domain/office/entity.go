package office

import (
	"fmt"
	"time"

	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
)

// ClockTime is a civil wall-clock time without a date, e.g. 09:00.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the time as minutes after midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes() < other.Minutes()
}

// DayHours is the working window for one day of the week.
type DayHours struct {
	Start ClockTime
	End   ClockTime
}

// Holiday is a recurring month/day public holiday. Working-day
// enumeration skips these regardless of the weekday policy.
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// Office is the geofenced site attendance is evaluated against. The
// attendance engine treats it as read-only; only administrators edit it.
type Office struct {
	ID           string
	Name         string
	Center       geo.Coordinate
	RadiusMeters float64

	// WorkingHours maps a weekday to its working window. A missing
	// entry means the day is not a working day at all.
	WorkingHours map[time.Weekday]DayHours

	// UTCOffsetMinutes fixes the office's local civil time, e.g. +180
	// for Africa/Dar_es_Salaam.
	UTCOffsetMinutes int

	Holidays []Holiday

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursFor returns the working window for the given weekday, if any.
func (o Office) HoursFor(day time.Weekday) (DayHours, bool) {
	h, ok := o.WorkingHours[day]
	return h, ok
}

// IsHoliday reports whether the given month/day is a configured holiday.
func (o Office) IsHoliday(month time.Month, day int) bool {
	for _, h := range o.Holidays {
		if h.Month == month && h.Day == day {
			return true
		}
	}
	return false
}

// Location returns the office's local civil time zone as a fixed-offset
// location. Both the live check-in path and calendar reconstruction
// must use this, never the process's local zone.
func (o Office) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", o.UTCOffsetMinutes/60), o.UTCOffsetMinutes*60)
}
