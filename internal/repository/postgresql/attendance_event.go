package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

// Create implements attendance.EventRepository.
func (r *attendanceEventRepository) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, type, timestamp, latitude, longitude, photo_url, method
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Type,
		event.Timestamp,
		event.Latitude,
		event.Longitude,
		event.PhotoURL,
		event.Method,
	).Scan(&event.CreatedAt)

	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// GetLastEventForDay implements attendance.EventRepository.
func (r *attendanceEventRepository) GetLastEventForDay(ctx context.Context, employeeID string, dateLocal string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, timestamp, latitude, longitude, photo_url, method, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND timestamp::date = $2::date
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var event attendance.Event
	err := q.QueryRow(ctx, query, employeeID, dateLocal).Scan(
		&event.ID, &event.EmployeeID, &event.Type, &event.Timestamp,
		&event.Latitude, &event.Longitude, &event.PhotoURL, &event.Method, &event.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get last event for day: %w", err)
	}

	return event, nil
}

// List implements attendance.EventRepository.
func (r *attendanceEventRepository) List(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND e.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND e.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND e.timestamp::date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND e.timestamp::date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM attendance_events e WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT e.id, e.employee_id, e.type, e.timestamp, e.latitude, e.longitude,
			   e.photo_url, e.method, e.created_at,
			   emp.full_name AS employee_name
		FROM attendance_events e
		LEFT JOIN employees emp ON emp.id = e.employee_id
		WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY e.timestamp DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var event attendance.Event
		err := rows.Scan(
			&event.ID, &event.EmployeeID, &event.Type, &event.Timestamp,
			&event.Latitude, &event.Longitude, &event.PhotoURL, &event.Method, &event.CreatedAt,
			&event.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}

	return events, totalCount, rows.Err()
}

// ListByPeriod implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, timestamp, latitude, longitude, photo_url, method, created_at
		FROM attendance_events
		WHERE timestamp >= $1 AND timestamp <= $2
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events by period: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var event attendance.Event
		err := rows.Scan(
			&event.ID, &event.EmployeeID, &event.Type, &event.Timestamp,
			&event.Latitude, &event.Longitude, &event.PhotoURL, &event.Method, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
