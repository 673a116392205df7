package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/silabu/attendance-backend-go/internal/config"
	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/domain/auth"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	events   attendance.EventRepository
	offices  office.OfficeRepository
	bindings device.BindingRepository
	cfg      config.AttendanceConfig

	// now is swappable for tests.
	now func() time.Time
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	officeRepo office.OfficeRepository,
	bindingRepo device.BindingRepository,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		events:   eventRepo,
		offices:  officeRepo,
		bindings: bindingRepo,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", auth.ErrNotAuthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrNotAuthenticated
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// CheckIn implements attendance.AttendanceService.
//
// The gates run in a fixed order: device authorization, geofence,
// duplicate-day guard, punctuality. A device bound here stays bound
// even when a later gate rejects the attempt; binding and geofencing
// are independent concerns.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if req.Latitude == nil || req.Longitude == nil {
		return attendance.EventResponse{}, attendance.ErrLocationUnavailable
	}
	userLocation := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}

	off, err := a.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return attendance.EventResponse{}, attendance.ErrOfficeNotConfigured
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to load office: %w", err)
	}

	if err := device.Authorize(ctx, a.bindings, userID, req.DeviceID); err != nil {
		return attendance.EventResponse{}, err
	}

	within, distance := geo.CheckGeofence(userLocation, off.Center, off.RadiusMeters)
	if !within {
		return attendance.EventResponse{}, &attendance.OutOfGeofenceError{
			DistanceMeters: distance,
			RadiusMeters:   off.RadiusMeters,
		}
	}

	nowUTC := a.now()
	loc := a.officeLocation(off)

	dayStart, dayEnd := localDayBounds(nowUTC, loc)
	alreadyIn, err := a.events.ExistsForUserBetween(ctx, userID, attendance.KindCheckIn, dayStart, dayEnd)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to check for an existing check-in: %w", err)
	}
	if alreadyIn {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusOnTime
	if hours, working := off.HoursFor(nowUTC.In(loc).Weekday()); working {
		status = attendance.ClassifyPunctuality(nowUTC, hours.Start, a.cfg.GraceMinutes, loc)
	}

	event := attendance.Event{
		ID:             uuid.NewString(),
		UserID:         userID,
		Kind:           attendance.KindCheckIn,
		Timestamp:      nowUTC,
		Coordinates:    userLocation,
		DistanceMeters: int(math.Round(distance)),
		DeviceID:       optionalString(req.DeviceID),
		Status:         &status,
	}

	created, err := a.events.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return attendance.ToEventResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Check-out shares
// the geofence gate but never re-binds a device and never classifies
// on-time/late; it marks early-departure when leaving before the
// scheduled end of the day.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if req.Latitude == nil || req.Longitude == nil {
		return attendance.EventResponse{}, attendance.ErrLocationUnavailable
	}
	userLocation := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}

	off, err := a.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return attendance.EventResponse{}, attendance.ErrOfficeNotConfigured
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to load office: %w", err)
	}

	within, distance := geo.CheckGeofence(userLocation, off.Center, off.RadiusMeters)
	if !within {
		return attendance.EventResponse{}, &attendance.OutOfGeofenceError{
			DistanceMeters: distance,
			RadiusMeters:   off.RadiusMeters,
		}
	}

	nowUTC := a.now()
	loc := a.officeLocation(off)

	dayStart, dayEnd := localDayBounds(nowUTC, loc)
	checkedIn, err := a.events.ExistsForUserBetween(ctx, userID, attendance.KindCheckIn, dayStart, dayEnd)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to check for a check-in: %w", err)
	}
	if !checkedIn {
		return attendance.EventResponse{}, attendance.ErrNotCheckedIn
	}

	alreadyOut, err := a.events.ExistsForUserBetween(ctx, userID, attendance.KindCheckOut, dayStart, dayEnd)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to check for an existing check-out: %w", err)
	}
	if alreadyOut {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedOut
	}

	var status *attendance.Status
	if hours, working := off.HoursFor(nowUTC.In(loc).Weekday()); working {
		if attendance.IsEarlyDeparture(nowUTC, hours.End, loc) {
			s := attendance.StatusEarlyDeparture
			status = &s
		}
	}

	event := attendance.Event{
		ID:             uuid.NewString(),
		UserID:         userID,
		Kind:           attendance.KindCheckOut,
		Timestamp:      nowUTC,
		Coordinates:    userLocation,
		DistanceMeters: int(math.Round(distance)),
		DeviceID:       optionalString(req.DeviceID),
		Status:         status,
	}

	created, err := a.events.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return attendance.ToEventResponse(created), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) ([]attendance.EventResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	off, err := a.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return nil, attendance.ErrOfficeNotConfigured
		}
		return nil, fmt.Errorf("failed to load office: %w", err)
	}

	dayStart, dayEnd := localDayBounds(a.now(), a.officeLocation(off))
	events, err := a.events.ListByUserBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}
	return responses, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.MonthFilter) ([]attendance.DayRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Only administrators may read someone else's history.
	targetUser := userID
	if filter.UserID != "" && filter.UserID != userID {
		if role != user.RoleAdmin {
			return nil, user.ErrAdminPrivilegeRequired
		}
		targetUser = filter.UserID
	}

	off, err := a.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return nil, attendance.ErrOfficeNotConfigured
		}
		return nil, fmt.Errorf("failed to load office: %w", err)
	}

	loc := a.officeLocation(off)
	from := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, loc).UTC()
	to := time.Date(filter.Year, time.Month(filter.Month)+1, 1, 0, 0, 0, 0, loc).UTC()

	events, err := a.events.ListByUserBetween(ctx, targetUser, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list month events: %w", err)
	}

	records := attendance.BuildMonth(filter.Year, time.Month(filter.Month), a.withDefaults(off), events, a.cfg.GraceMinutes)

	responses := make([]attendance.DayRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToDayRecordResponse(rec))
	}
	return responses, nil
}

// ListMonthEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMonthEvents(ctx context.Context, filter attendance.MonthFilter) ([]attendance.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if _, _, err := claimsFromContext(ctx); err != nil {
		return nil, err
	}

	off, err := a.offices.GetPrimary(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return nil, attendance.ErrOfficeNotConfigured
		}
		return nil, fmt.Errorf("failed to load office: %w", err)
	}

	loc := a.officeLocation(off)
	from := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, loc).UTC()
	to := time.Date(filter.Year, time.Month(filter.Month)+1, 1, 0, 0, 0, 0, loc).UTC()

	var events []attendance.Event
	if filter.UserID != "" {
		events, err = a.events.ListByUserBetween(ctx, filter.UserID, from, to)
	} else {
		events, err = a.events.ListBetween(ctx, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list month events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}
	return responses, nil
}

// officeLocation resolves the office's fixed-offset zone, falling back
// to the configured default when the office has no offset set.
func (a *AttendanceServiceImpl) officeLocation(off office.Office) *time.Location {
	return a.withDefaults(off).Location()
}

func (a *AttendanceServiceImpl) withDefaults(off office.Office) office.Office {
	if off.UTCOffsetMinutes == 0 && a.cfg.DefaultUTCOffsetMinutes != 0 {
		off.UTCOffsetMinutes = a.cfg.DefaultUTCOffsetMinutes
	}
	return off
}

// localDayBounds returns the UTC instants bounding the local civil day
// containing t.
func localDayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.Add(24 * time.Hour).UTC()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
