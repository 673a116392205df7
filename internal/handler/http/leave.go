package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/leave"
	"github.com/silabu/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Request implements LeaveHandler.
func (h *LeaveHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var leaveReq leave.CreateLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("Leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Request(r.Context(), leaveReq)
	if err != nil {
		slog.Error("Leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave requested", "leave_id", created.ID)
	response.Created(w, "Leave request submitted", created)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.leaveService.List(r.Context())
	if err != nil {
		slog.Error("List leaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	approved, err := h.leaveService.Approve(r.Context(), id)
	if err != nil {
		slog.Error("Approve leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave approved", "leave_id", id)
	response.SuccessWithMessage(w, "Leave request approved", approved)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rejected, err := h.leaveService.Reject(r.Context(), id)
	if err != nil {
		slog.Error("Reject leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave rejected", "leave_id", id)
	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}

// Delete implements LeaveHandler.
func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.leaveService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}
