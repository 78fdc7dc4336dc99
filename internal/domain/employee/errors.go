package employee

import "errors"

var (
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmailExists              = errors.New("email already registered")
	ErrEmployeeCodeNotFound     = errors.New("employee code not found")
	ErrEmployeeNotApproved      = errors.New("employee registration is not approved")
	ErrEmployeeAlreadyProcessed = errors.New("employee registration has already been approved or rejected")
	ErrEmployeeNotSuspended     = errors.New("employee is not suspended")
	ErrEmployeeAlreadySuspended = errors.New("employee is already suspended")
)
