package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var dayErr *attendance.DayNotAllowedError

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Your account has been deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Attendance group not found")
	case errors.Is(err, group.ErrDuplicateName):
		Conflict(w, "Attendance group with this name already exists")
	case errors.Is(err, group.ErrMembershipExists):
		Conflict(w, "User is already assigned to this group")
	case errors.Is(err, group.ErrMembershipNotFound):
		NotFound(w, "User is not assigned to this group")

	// Attendance domain errors
	case errors.As(err, &dayErr):
		WithCode(w, http.StatusForbidden, CodeDayNotAllowed, dayErr.Error())
	case errors.Is(err, attendance.ErrDayNotAllowed):
		WithCode(w, http.StatusForbidden, CodeDayNotAllowed, "You are not allowed to clock in today.")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		WithCode(w, http.StatusConflict, CodeAlreadyCheckedOut, "You have already clocked out today.")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		WithCode(w, http.StatusConflict, CodeNotCheckedIn, "You must clock in before clocking out.")
	case errors.Is(err, attendance.ErrInvalidOrder):
		WithCode(w, http.StatusUnprocessableEntity, CodeInvalidOrder, "Check-out time must be after check-in time.")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", map[string]string{"format": "format must be one of: xlsx, csv"})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
