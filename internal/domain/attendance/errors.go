package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrEventNotFound     = errors.New("attendance event not found")
	ErrOutsideOffice     = errors.New("location is outside the office radius")
)
