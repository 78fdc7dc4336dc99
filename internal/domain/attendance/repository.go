package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access methods for attendance events.
// Events are append-only: there is deliberately no update or delete.
type EventRepository interface {
	// Create appends a new check-in or check-out event.
	Create(ctx context.Context, event Event) (Event, error)

	// GetLastEventForDay returns the chronologically last event of one
	// employee on one local calendar day ("2006-01-02"), or ErrEventNotFound.
	// Used to decide whether a check-out is currently expected.
	GetLastEventForDay(ctx context.Context, employeeID string, dateLocal string) (Event, error)

	// List retrieves events with filters and pagination, newest first.
	List(ctx context.Context, filter EventFilter) ([]Event, int64, error)

	// ListByPeriod retrieves all events with timestamps inside [start, end],
	// in chronological order. This is the slice the salary engine consumes.
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Event, error)
}

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckRequest) (EventResponse, error)
	CheckOut(ctx context.Context, req CheckRequest) (EventResponse, error)
	List(ctx context.Context, filter EventFilter) (ListEventResponse, error)
}
