package salary

import "errors"

var (
	ErrConfigNotFound = errors.New("salary configuration not found")
)
