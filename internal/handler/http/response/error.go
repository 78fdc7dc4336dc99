package response

import (
	"errors"
	"net/http"

	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/auth"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/hadirin/attendance-backend-go/internal/domain/user"
	"github.com/hadirin/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		Forbidden(w, "No admin account for this Google email")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeNotFound):
		NotFound(w, "Employee code not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeNotApproved):
		Forbidden(w, "Employee registration is not approved")
	case errors.Is(err, employee.ErrEmployeeAlreadyProcessed):
		Conflict(w, "Employee registration already processed")
	case errors.Is(err, employee.ErrEmployeeNotSuspended):
		Conflict(w, "Employee is not suspended")
	case errors.Is(err, employee.ErrEmployeeAlreadySuspended):
		Conflict(w, "Employee is already suspended")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in yet")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrOutsideOffice):
		Forbidden(w, "Location is outside the office radius")

	// Salary domain errors
	case errors.Is(err, salary.ErrConfigNotFound):
		NotFound(w, "Salary configuration not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
