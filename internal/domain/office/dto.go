package office

import (
	"time"

	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
	"github.com/silabu/attendance-backend-go/internal/pkg/validator"
)

// DayHoursPayload is the wire form of one working day's window.
type DayHoursPayload struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00"
}

// HolidayPayload is the wire form of a recurring public holiday.
type HolidayPayload struct {
	Month int    `json:"month"` // 1-based
	Day   int    `json:"day"`
	Name  string `json:"name"`
}

type OfficeRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`

	// Keyed by weekday, 0=Sunday .. 6=Saturday. Days with no entry are
	// non-working days.
	WorkingHours map[int]DayHoursPayload `json:"working_hours"`

	UTCOffsetMinutes int              `json:"utc_offset_minutes"`
	Holidays         []HolidayPayload `json:"holidays,omitempty"`
}

func (r *OfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius must be positive",
		})
	}

	if len(r.WorkingHours) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "at least one working day is required",
		})
	}

	for day, hours := range r.WorkingHours {
		if day < 0 || day > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "weekday must be between 0 (Sunday) and 6 (Saturday)",
			})
			continue
		}
		if !validator.IsValidClockTime(hours.Start) || !validator.IsValidClockTime(hours.End) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "start and end must be HH:MM times",
			})
			continue
		}
		start, _ := ParseClockTime(hours.Start)
		end, _ := ParseClockTime(hours.End)
		if !start.Before(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "start must be before end",
			})
		}
	}

	for _, h := range r.Holidays {
		if h.Month < 1 || h.Month > 12 || h.Day < 1 || h.Day > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "holidays",
				Message: "holiday month/day out of range",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request into an Office entity.
func (r *OfficeRequest) ToEntity() Office {
	hours := make(map[time.Weekday]DayHours, len(r.WorkingHours))
	for day, payload := range r.WorkingHours {
		start, _ := ParseClockTime(payload.Start)
		end, _ := ParseClockTime(payload.End)
		hours[time.Weekday(day)] = DayHours{Start: start, End: end}
	}

	holidays := make([]Holiday, 0, len(r.Holidays))
	for _, h := range r.Holidays {
		holidays = append(holidays, Holiday{
			Month: time.Month(h.Month),
			Day:   h.Day,
			Name:  h.Name,
		})
	}

	return Office{
		Name:             r.Name,
		Center:           geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
		RadiusMeters:     r.RadiusMeters,
		WorkingHours:     hours,
		UTCOffsetMinutes: r.UTCOffsetMinutes,
		Holidays:         holidays,
	}
}

type OfficeResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	RadiusMeters     float64                 `json:"radius_meters"`
	WorkingHours     map[int]DayHoursPayload `json:"working_hours"`
	UTCOffsetMinutes int                     `json:"utc_offset_minutes"`
	Holidays         []HolidayPayload        `json:"holidays,omitempty"`
	CreatedAt        string                  `json:"created_at"`
	UpdatedAt        string                  `json:"updated_at"`
}

// ToResponse converts an Office entity into its wire form.
func ToResponse(o Office) OfficeResponse {
	hours := make(map[int]DayHoursPayload, len(o.WorkingHours))
	for day, window := range o.WorkingHours {
		hours[int(day)] = DayHoursPayload{
			Start: window.Start.String(),
			End:   window.End.String(),
		}
	}

	holidays := make([]HolidayPayload, 0, len(o.Holidays))
	for _, h := range o.Holidays {
		holidays = append(holidays, HolidayPayload{
			Month: int(h.Month),
			Day:   h.Day,
			Name:  h.Name,
		})
	}

	return OfficeResponse{
		ID:               o.ID,
		Name:             o.Name,
		Latitude:         o.Center.Latitude,
		Longitude:        o.Center.Longitude,
		RadiusMeters:     o.RadiusMeters,
		WorkingHours:     hours,
		UTCOffsetMinutes: o.UTCOffsetMinutes,
		Holidays:         holidays,
		CreatedAt:        o.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
