package attendance

import "time"

type EventType string

const (
	EventCheckIn  EventType = "check-in"
	EventCheckOut EventType = "check-out"
)

// Event is one immutable check-in or check-out record. The events table is
// append-only; rows are never updated or deleted.
type Event struct {
	ID         string
	EmployeeID string
	Type       EventType
	Timestamp  time.Time
	Latitude   *float64
	Longitude  *float64
	PhotoURL   *string
	Method     *string
	CreatedAt  time.Time

	// DTO
	EmployeeName *string
}
