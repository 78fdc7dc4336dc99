package attendance

import (
	"github.com/hadirin/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckRequest is posted by the scanner client for both check-in and
// check-out. The employee code comes out of the scanned QR image.
type CheckRequest struct {
	EmployeeCode string   `json:"employee_code"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
	Method       *string  `json:"method,omitempty"`
}

var allowedMethods = []string{"qr", "manual", "face"}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code format is invalid",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Method != nil && !validator.IsInSlice(*r.Method, allowedMethods) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: qr, manual, face",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventFilter struct {
	EmployeeID *string
	Type       *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

type EventResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Type         string   `json:"type"`
	Timestamp    string   `json:"timestamp"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
	Method       *string  `json:"method,omitempty"`
}

type ListEventResponse struct {
	Data       []EventResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
