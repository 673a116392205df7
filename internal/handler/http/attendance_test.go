package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/silabu/attendance-backend-go/internal/config"
	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/pkg/geo"
	attendanceService "github.com/silabu/attendance-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestCenter = geo.Coordinate{Latitude: -6.7735903, Longitude: 39.2191592}

type memEventRepo struct {
	mu     sync.Mutex
	events []attendance.Event
}

func (m *memEventRepo) Create(_ context.Context, event attendance.Event) (attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.CreatedAt = time.Now().UTC()
	m.events = append(m.events, event)
	return event, nil
}

func (m *memEventRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Event
	for _, ev := range m.events {
		if ev.UserID == userID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memEventRepo) ListBetween(_ context.Context, from, to time.Time) ([]attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Event
	for _, ev := range m.events {
		if !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memEventRepo) ExistsForUserBetween(_ context.Context, userID string, kind attendance.Kind, from, to time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.UserID == userID && ev.Kind == kind && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

type memOfficeRepo struct {
	office office.Office
}

func (m *memOfficeRepo) Create(_ context.Context, o office.Office) (office.Office, error) {
	m.office = o
	return o, nil
}
func (m *memOfficeRepo) GetByID(_ context.Context, _ string) (office.Office, error) {
	return m.office, nil
}
func (m *memOfficeRepo) GetPrimary(_ context.Context) (office.Office, error) {
	return m.office, nil
}
func (m *memOfficeRepo) List(_ context.Context) ([]office.Office, error) {
	return []office.Office{m.office}, nil
}
func (m *memOfficeRepo) Update(_ context.Context, o office.Office) error {
	m.office = o
	return nil
}
func (m *memOfficeRepo) Delete(_ context.Context, _ string) error { return nil }

type memBindingRepo struct {
	mu       sync.Mutex
	bindings map[string]device.Binding
}

func (m *memBindingRepo) GetByDeviceID(_ context.Context, deviceID string) (*device.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bindings[deviceID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *memBindingRepo) ListByUserID(_ context.Context, userID string) ([]device.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []device.Binding
	for _, b := range m.bindings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBindingRepo) BindIfAbsent(_ context.Context, deviceID, userID string) (device.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bindings[deviceID]; ok {
		return b, nil
	}
	b := device.Binding{DeviceID: deviceID, UserID: userID, CreatedAt: time.Now().UTC()}
	m.bindings[deviceID] = b
	return b, nil
}

func (m *memBindingRepo) ClearForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.bindings {
		if b.UserID == userID {
			delete(m.bindings, id)
		}
	}
	return nil
}

func handlerTestOffice() office.Office {
	weekday := office.DayHours{
		Start: office.ClockTime{Hour: 9},
		End:   office.ClockTime{Hour: 18},
	}
	return office.Office{
		ID:           "office-1",
		Name:         "Silabu HQ",
		Center:       handlerTestCenter,
		RadiusMeters: 1000,
		WorkingHours: map[time.Weekday]office.DayHours{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
		},
		UTCOffsetMinutes: 180,
	}
}

func createAttendanceHandler(t *testing.T) AttendanceHandler {
	t.Helper()
	svc := attendanceService.NewAttendanceService(
		&memEventRepo{},
		&memOfficeRepo{office: handlerTestOffice()},
		&memBindingRepo{bindings: make(map[string]device.Binding)},
		config.AttendanceConfig{GraceMinutes: 30, DefaultUTCOffsetMinutes: 180},
	)
	return NewAttendanceHandler(svc)
}

func authenticatedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte(handlerTestSecret), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": "user-1",
		"email":   "user-1@silabu.com",
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

// Test CheckIn - Success inside the geofence
func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	handler := createAttendanceHandler(t)

	checkInReq := attendance.CheckInRequest{
		Latitude:  &handlerTestCenter.Latitude,
		Longitude: &handlerTestCenter.Longitude,
		DeviceID:  "device-a",
	}
	body, _ := json.Marshal(checkInReq)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body)
	w := httptest.NewRecorder()

	handler.CheckIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "check-in", data["kind"])
	assert.NotEmpty(t, data["status"])
}

// Test CheckIn - Outside the geofence
func TestAttendanceHandler_CheckIn_OutsideGeofence(t *testing.T) {
	handler := createAttendanceHandler(t)

	farLat := handlerTestCenter.Latitude + 0.05
	checkInReq := attendance.CheckInRequest{
		Latitude:  &farLat,
		Longitude: &handlerTestCenter.Longitude,
	}
	body, _ := json.Marshal(checkInReq)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body)
	w := httptest.NewRecorder()

	handler.CheckIn(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))

	// The rejection carries the measured distance.
	errDetail := resp["error"].(map[string]interface{})
	assert.Contains(t, errDetail["message"], "km")
}

// Test CheckIn - Missing coordinates
func TestAttendanceHandler_CheckIn_MissingCoordinates(t *testing.T) {
	handler := createAttendanceHandler(t)

	body, _ := json.Marshal(attendance.CheckInRequest{})
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body)
	w := httptest.NewRecorder()

	handler.CheckIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Test CheckIn - Duplicate in the same day
func TestAttendanceHandler_CheckIn_Duplicate(t *testing.T) {
	handler := createAttendanceHandler(t)

	checkInReq := attendance.CheckInRequest{
		Latitude:  &handlerTestCenter.Latitude,
		Longitude: &handlerTestCenter.Longitude,
	}
	body, _ := json.Marshal(checkInReq)

	first := httptest.NewRecorder()
	handler.CheckIn(first, authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	handler.CheckIn(second, authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body))
	assert.Equal(t, http.StatusConflict, second.Code)
}

// Test CheckIn - Invalid JSON
func TestAttendanceHandler_CheckIn_InvalidJSON(t *testing.T) {
	handler := createAttendanceHandler(t)

	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", []byte("invalid json"))
	w := httptest.NewRecorder()

	handler.CheckIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Test CheckIn - No token in context
func TestAttendanceHandler_CheckIn_Unauthenticated(t *testing.T) {
	handler := createAttendanceHandler(t)

	checkInReq := attendance.CheckInRequest{
		Latitude:  &handlerTestCenter.Latitude,
		Longitude: &handlerTestCenter.Longitude,
	}
	body, _ := json.Marshal(checkInReq)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CheckIn(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test CheckOut - Without a prior check-in
func TestAttendanceHandler_CheckOut_NotCheckedIn(t *testing.T) {
	handler := createAttendanceHandler(t)

	checkOutReq := attendance.CheckOutRequest{
		Latitude:  &handlerTestCenter.Latitude,
		Longitude: &handlerTestCenter.Longitude,
	}
	body, _ := json.Marshal(checkOutReq)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-out", body)
	w := httptest.NewRecorder()

	handler.CheckOut(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// Test GetToday - Reflects a recorded check-in
func TestAttendanceHandler_GetToday(t *testing.T) {
	handler := createAttendanceHandler(t)

	checkInReq := attendance.CheckInRequest{
		Latitude:  &handlerTestCenter.Latitude,
		Longitude: &handlerTestCenter.Longitude,
	}
	body, _ := json.Marshal(checkInReq)
	w := httptest.NewRecorder()
	handler.CheckIn(w, authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body))
	require.Equal(t, http.StatusCreated, w.Code)

	todayW := httptest.NewRecorder()
	handler.GetToday(todayW, authenticatedRequest(t, http.MethodGet, "/api/v1/attendance/today", nil))

	assert.Equal(t, http.StatusOK, todayW.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(todayW.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp["data"].([]interface{}), 1)
}

// Test GetHistory - Month query parameters
func TestAttendanceHandler_GetHistory_QueryParams(t *testing.T) {
	handler := createAttendanceHandler(t)

	target := fmt.Sprintf("/api/v1/attendance/history?month=%d&year=%d", 6, 2025)
	req := authenticatedRequest(t, http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.True(t, resp["success"].(bool))

	// June 2025 has 21 working weekdays under the Mon-Fri policy.
	records := resp["data"].([]interface{})
	assert.Len(t, records, 21)
}

// Test GetHistory - Invalid month rejected
func TestAttendanceHandler_GetHistory_InvalidMonth(t *testing.T) {
	handler := createAttendanceHandler(t)

	req := authenticatedRequest(t, http.MethodGet, "/api/v1/attendance/history?month=13&year=2025", nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
