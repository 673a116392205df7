package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/silabu/attendance-backend-go/internal/config"
	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Silabu office in Dar es Salaam, UTC+3.
var testCenter = geo.Coordinate{Latitude: -6.7735903, Longitude: 39.2191592}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []attendance.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event attendance.Event) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.UserID == userID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListBetween(_ context.Context, from, to time.Time) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, ev := range f.events {
		if !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ExistsForUserBetween(_ context.Context, userID string, kind attendance.Kind, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ev := range f.events {
		if ev.UserID == userID && ev.Kind == kind && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

type fakeOfficeRepo struct {
	office *office.Office
}

func (f *fakeOfficeRepo) Create(_ context.Context, o office.Office) (office.Office, error) {
	f.office = &o
	return o, nil
}

func (f *fakeOfficeRepo) GetByID(_ context.Context, _ string) (office.Office, error) {
	if f.office == nil {
		return office.Office{}, office.ErrOfficeNotFound
	}
	return *f.office, nil
}

func (f *fakeOfficeRepo) GetPrimary(_ context.Context) (office.Office, error) {
	if f.office == nil {
		return office.Office{}, office.ErrOfficeNotFound
	}
	return *f.office, nil
}

func (f *fakeOfficeRepo) List(_ context.Context) ([]office.Office, error) {
	if f.office == nil {
		return nil, nil
	}
	return []office.Office{*f.office}, nil
}

func (f *fakeOfficeRepo) Update(_ context.Context, o office.Office) error {
	f.office = &o
	return nil
}

func (f *fakeOfficeRepo) Delete(_ context.Context, _ string) error {
	f.office = nil
	return nil
}

type fakeBindingRepo struct {
	mu       sync.Mutex
	bindings map[string]device.Binding
}

func newFakeBindingRepo() *fakeBindingRepo {
	return &fakeBindingRepo{bindings: make(map[string]device.Binding)}
}

func (f *fakeBindingRepo) GetByDeviceID(_ context.Context, deviceID string) (*device.Binding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bindings[deviceID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBindingRepo) ListByUserID(_ context.Context, userID string) ([]device.Binding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []device.Binding
	for _, b := range f.bindings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBindingRepo) BindIfAbsent(_ context.Context, deviceID, userID string) (device.Binding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bindings[deviceID]; ok {
		return b, nil
	}
	b := device.Binding{DeviceID: deviceID, UserID: userID, CreatedAt: time.Now().UTC()}
	f.bindings[deviceID] = b
	return b, nil
}

func (f *fakeBindingRepo) ClearForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.bindings {
		if b.UserID == userID {
			delete(f.bindings, id)
		}
	}
	return nil
}

func testOffice() office.Office {
	weekday := office.DayHours{
		Start: office.ClockTime{Hour: 9},
		End:   office.ClockTime{Hour: 18},
	}
	return office.Office{
		ID:           "office-1",
		Name:         "Silabu HQ",
		Center:       testCenter,
		RadiusMeters: 1000,
		WorkingHours: map[time.Weekday]office.DayHours{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday:  {Start: office.ClockTime{Hour: 8}, End: office.ClockTime{Hour: 12}},
		},
		UTCOffsetMinutes: 180,
	}
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@silabu.com",
		"role":    string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type serviceFixture struct {
	svc      *AttendanceServiceImpl
	events   *fakeEventRepo
	bindings *fakeBindingRepo
	offices  *fakeOfficeRepo
}

func newFixture(t *testing.T, at time.Time) *serviceFixture {
	t.Helper()
	off := testOffice()
	fx := &serviceFixture{
		events:   &fakeEventRepo{},
		bindings: newFakeBindingRepo(),
		offices:  &fakeOfficeRepo{office: &off},
	}
	cfg := config.AttendanceConfig{GraceMinutes: 30, DefaultUTCOffsetMinutes: 180}
	svc := NewAttendanceService(fx.events, fx.offices, fx.bindings, cfg).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return at.UTC() }
	fx.svc = svc
	return fx
}

func ptr(v float64) *float64 { return &v }

func insideRequest(deviceID string) attendance.CheckInRequest {
	return attendance.CheckInRequest{
		Latitude:  ptr(testCenter.Latitude),
		Longitude: ptr(testCenter.Longitude),
		DeviceID:  deviceID,
	}
}

// Monday 2025-06-02 09:10 local is 06:10 UTC at +3.
var mondayMorning = time.Date(2025, 6, 2, 6, 10, 0, 0, time.UTC)

func TestCheckIn_OnTimeWithinGrace(t *testing.T) {
	fx := newFixture(t, mondayMorning.Add(20*time.Minute)) // 09:30 local, grace edge
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	resp, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))

	require.NoError(t, err)
	assert.Equal(t, "check-in", resp.Kind)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "on-time", *resp.Status)
	assert.Equal(t, 0, resp.DistanceMeters)
}

func TestCheckIn_LateAfterGrace(t *testing.T) {
	fx := newFixture(t, mondayMorning.Add(21*time.Minute)) // 09:31 local
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	resp, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))

	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "late", *resp.Status)
}

func TestCheckIn_MissingCoordinates(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{DeviceID: "device-a"})

	assert.ErrorIs(t, err, attendance.ErrLocationUnavailable)
	assert.Empty(t, fx.events.events)
}

func TestCheckIn_OutsideGeofence(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	// ~2.2km north of the office.
	req := attendance.CheckInRequest{
		Latitude:  ptr(testCenter.Latitude + 0.02),
		Longitude: ptr(testCenter.Longitude),
		DeviceID:  "device-a",
	}
	_, err := fx.svc.CheckIn(ctx, req)

	var geofenceErr *attendance.OutOfGeofenceError
	require.ErrorAs(t, err, &geofenceErr)
	assert.Greater(t, geofenceErr.DistanceMeters, 1000.0)
	assert.Empty(t, fx.events.events)
}

func TestCheckIn_BindingPersistsWhenGeofenceRejects(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	req := attendance.CheckInRequest{
		Latitude:  ptr(testCenter.Latitude + 0.02),
		Longitude: ptr(testCenter.Longitude),
		DeviceID:  "device-a",
	}
	_, err := fx.svc.CheckIn(ctx, req)

	var geofenceErr *attendance.OutOfGeofenceError
	require.ErrorAs(t, err, &geofenceErr)

	// The device was bound before the geofence gate fired.
	binding, err := fx.bindings.GetByDeviceID(context.Background(), "device-a")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "user-1", binding.UserID)
}

func TestCheckIn_DeviceBoundToAnotherUser(t *testing.T) {
	fx := newFixture(t, mondayMorning)

	_, err := fx.svc.CheckIn(authedContext(t, "user-1", user.RoleEmployee), insideRequest("shared-device"))
	require.NoError(t, err)

	_, err = fx.svc.CheckIn(authedContext(t, "user-2", user.RoleEmployee), insideRequest("shared-device"))
	assert.ErrorIs(t, err, device.ErrBoundToOtherUser)
}

func TestCheckIn_SecondDeviceRejected(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	// Next day, same user, a different device.
	fx.svc.now = func() time.Time { return mondayMorning.Add(24 * time.Hour) }
	_, err = fx.svc.CheckIn(ctx, insideRequest("device-b"))
	assert.ErrorIs(t, err, device.ErrUnrecognizedDevice)
}

func TestCheckIn_DuplicateSameDay(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	fx.svc.now = func() time.Time { return mondayMorning.Add(2 * time.Hour) }
	_, err = fx.svc.CheckIn(ctx, insideRequest("device-a"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, fx.events.events, 1)
}

func TestCheckIn_NoOfficeConfigured(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	fx.offices.office = nil
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	assert.ErrorIs(t, err, attendance.ErrOfficeNotConfigured)
}

func TestCheckIn_Unauthenticated(t *testing.T) {
	fx := newFixture(t, mondayMorning)

	_, err := fx.svc.CheckIn(context.Background(), insideRequest("device-a"))
	assert.Error(t, err)
	assert.Empty(t, fx.events.events)
}

func TestCheckOut_RequiresCheckIn(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Latitude:  ptr(testCenter.Latitude),
		Longitude: ptr(testCenter.Longitude),
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_EarlyDeparture(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	// 14:00 local, before the 18:00 close.
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC) }
	resp, err := fx.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Latitude:  ptr(testCenter.Latitude),
		Longitude: ptr(testCenter.Longitude),
		DeviceID:  "device-a",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "early-departure", *resp.Status)
}

func TestCheckOut_AtCloseHasNoStatus(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	// 18:00 local exactly.
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC) }
	resp, err := fx.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Latitude:  ptr(testCenter.Latitude),
		Longitude: ptr(testCenter.Longitude),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.Status)
}

func TestCheckOut_Duplicate(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	out := attendance.CheckOutRequest{
		Latitude:  ptr(testCenter.Latitude),
		Longitude: ptr(testCenter.Longitude),
	}

	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC) }
	_, err = fx.svc.CheckOut(ctx, out)
	require.NoError(t, err)

	_, err = fx.svc.CheckOut(ctx, out)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestGetToday_ReturnsLocalDayEvents(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.CheckIn(ctx, insideRequest("device-a"))
	require.NoError(t, err)

	// An event from the previous local day must not appear.
	fx.events.events = append(fx.events.events, attendance.Event{
		ID:        "old",
		UserID:    "user-1",
		Kind:      attendance.KindCheckIn,
		Timestamp: mondayMorning.Add(-24 * time.Hour),
	})

	today, err := fx.svc.GetToday(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "check-in", today[0].Kind)
}

func TestGetHistory_EmployeeCannotReadOthers(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.GetHistory(ctx, attendance.MonthFilter{Month: 6, Year: 2025, UserID: "user-2"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestGetHistory_AdminReadsAnyUser(t *testing.T) {
	fx := newFixture(t, mondayMorning)

	_, err := fx.svc.CheckIn(authedContext(t, "user-2", user.RoleEmployee), insideRequest("device-b"))
	require.NoError(t, err)

	adminCtx := authedContext(t, "admin-1", user.RoleAdmin)
	records, err := fx.svc.GetHistory(adminCtx, attendance.MonthFilter{Month: 6, Year: 2025, UserID: "user-2"})
	require.NoError(t, err)

	var found bool
	for _, rec := range records {
		if rec.Date == "2025-06-02" {
			found = true
			require.Len(t, rec.Events, 1)
			assert.Equal(t, "on-time", rec.Status)
		}
	}
	assert.True(t, found, "expected a record for the check-in day")
}

func TestGetHistory_InvalidMonth(t *testing.T) {
	fx := newFixture(t, mondayMorning)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := fx.svc.GetHistory(ctx, attendance.MonthFilter{Month: 13, Year: 2025})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, attendance.ErrOfficeNotConfigured))
}

func TestListMonthEvents_AllUsers(t *testing.T) {
	fx := newFixture(t, mondayMorning)

	_, err := fx.svc.CheckIn(authedContext(t, "user-1", user.RoleEmployee), insideRequest("device-a"))
	require.NoError(t, err)
	_, err = fx.svc.CheckIn(authedContext(t, "user-2", user.RoleEmployee), insideRequest("device-b"))
	require.NoError(t, err)

	adminCtx := authedContext(t, "admin-1", user.RoleAdmin)
	events, err := fx.svc.ListMonthEvents(adminCtx, attendance.MonthFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
