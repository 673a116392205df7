package response

import (
	"errors"
	"net/http"

	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/domain/auth"
	"github.com/silabu/attendance-backend-go/internal/domain/device"
	"github.com/silabu/attendance-backend-go/internal/domain/employee"
	"github.com/silabu/attendance-backend-go/internal/domain/leave"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
	"github.com/silabu/attendance-backend-go/internal/domain/user"
	"github.com/silabu/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance in the message.
	var geofenceErr *attendance.OutOfGeofenceError
	if errors.As(err, &geofenceErr) {
		Forbidden(w, geofenceErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrNotAuthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLocationUnavailable):
		BadRequest(w, "Location is unavailable; enable location services and try again", nil)
	case errors.Is(err, attendance.ErrOfficeNotConfigured):
		NotFound(w, "No office has been configured")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded for today")

	// Device binding errors
	case errors.Is(err, device.ErrBoundToOtherUser):
		Forbidden(w, err.Error())
	case errors.Is(err, device.ErrUnrecognizedDevice):
		Forbidden(w, err.Error())

	// Office domain errors
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office not found")
	case errors.Is(err, office.ErrOfficeNameExists):
		Conflict(w, "An office with this name already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotOwner):
		Forbidden(w, "Leave record belongs to another employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
