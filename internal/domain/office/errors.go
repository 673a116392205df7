package office

import "errors"

var (
	ErrOfficeNotFound    = errors.New("office not found")
	ErrOfficeNameExists  = errors.New("an office with this name already exists")
	ErrInvalidRadius     = errors.New("geofence radius must be positive")
	ErrInvalidWorkingDay = errors.New("working hours start must be before end")
	ErrNoWorkingDays     = errors.New("at least one working day is required")
)
