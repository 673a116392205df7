package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/handler/http/response"
)

type OfficeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetPrimary(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OfficeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &OfficeHandlerImpl{officeService: officeService}
}

// Create implements OfficeHandler.
func (h *OfficeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var officeReq office.OfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&officeReq); err != nil {
		slog.Error("Create office decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.officeService.Create(r.Context(), officeReq)
	if err != nil {
		slog.Error("Create office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Office created", "office_id", created.ID)
	response.Created(w, "Office created successfully", created)
}

// Get implements OfficeHandler.
func (h *OfficeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.officeService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetPrimary implements OfficeHandler.
func (h *OfficeHandlerImpl) GetPrimary(w http.ResponseWriter, r *http.Request) {
	found, err := h.officeService.GetPrimary(r.Context())
	if err != nil {
		slog.Error("Get primary office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements OfficeHandler.
func (h *OfficeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.officeService.List(r.Context())
	if err != nil {
		slog.Error("List offices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, offices)
}

// Update implements OfficeHandler.
func (h *OfficeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var officeReq office.OfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&officeReq); err != nil {
		slog.Error("Update office decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.officeService.Update(r.Context(), id, officeReq)
	if err != nil {
		slog.Error("Update office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office updated successfully", updated)
}

// Delete implements OfficeHandler.
func (h *OfficeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.officeService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Office deleted", "office_id", id)
	response.SuccessWithMessage(w, "Office deleted successfully", nil)
}
