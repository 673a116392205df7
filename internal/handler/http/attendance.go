package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	ListMonthEvents(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	event, err := h.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Check-in recorded", "status", event.Status)
	response.Created(w, "Checked in successfully", event)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq attendance.CheckOutRequest

	if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	event, err := h.attendanceService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Check-out recorded")
	response.Created(w, "Checked out successfully", event)
}

// GetToday implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	events, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		slog.Error("GetToday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// GetHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter := monthFilterFromQuery(r)

	records, err := h.attendanceService.GetHistory(r.Context(), filter)
	if err != nil {
		slog.Error("GetHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListMonthEvents implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMonthEvents(w http.ResponseWriter, r *http.Request) {
	filter := monthFilterFromQuery(r)

	events, err := h.attendanceService.ListMonthEvents(r.Context(), filter)
	if err != nil {
		slog.Error("ListMonthEvents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// monthFilterFromQuery reads month/year/user_id query parameters,
// defaulting to the current month.
func monthFilterFromQuery(r *http.Request) attendance.MonthFilter {
	now := time.Now().UTC()
	filter := attendance.MonthFilter{
		Month:  int(now.Month()),
		Year:   now.Year(),
		UserID: r.URL.Query().Get("user_id"),
	}

	if month, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		filter.Month = month
	}
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		filter.Year = year
	}
	return filter
}
