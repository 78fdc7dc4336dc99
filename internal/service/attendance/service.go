package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hadirin/attendance-backend-go/internal/config"
	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	eventRepo    attendance.EventRepository
	employeeRepo employee.EmployeeRepository
	office       config.OfficeConfig
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	office config.OfficeConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		office:       office,
	}
}

// CheckIn implements attendance.AttendanceService. A check-in is refused when
// the employee's last event today is already a check-in.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.EventResponse, error) {
	return s.recordEvent(ctx, req, attendance.EventCheckIn)
}

// CheckOut implements attendance.AttendanceService. A check-out is refused
// unless the employee's last event today is a check-in.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.EventResponse, error) {
	return s.recordEvent(ctx, req, attendance.EventCheckOut)
}

func (s *AttendanceServiceImpl) recordEvent(ctx context.Context, req attendance.CheckRequest, eventType attendance.EventType) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if !emp.IsApproved() {
		return attendance.EventResponse{}, employee.ErrEmployeeNotApproved
	}

	if err := s.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.EventResponse{}, err
	}

	now := time.Now()

	if err := s.checkDayState(ctx, emp.ID, now, eventType); err != nil {
		return attendance.EventResponse{}, err
	}

	event := attendance.Event{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: emp.ID,
		Type:       eventType,
		Timestamp:  now,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PhotoURL:   req.PhotoURL,
		Method:     req.Method,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	slog.Info("Attendance event recorded",
		"employee_id", emp.ID,
		"employee_code", emp.EmployeeCode,
		"type", eventType,
	)

	created.EmployeeName = &emp.FullName
	return mapToEventResponse(created), nil
}

// checkGeofence rejects events reported from outside the office radius.
// Events without coordinates are accepted, the kiosk scanner does not send
// any.
func (s *AttendanceServiceImpl) checkGeofence(lat, lon *float64) error {
	if s.office.RadiusMeters <= 0 || lat == nil || lon == nil {
		return nil
	}

	distance := utils.HaversineDistance(s.office.Latitude, s.office.Longitude, *lat, *lon)
	if distance > s.office.RadiusMeters {
		return attendance.ErrOutsideOffice
	}

	return nil
}

// checkDayState enforces alternation within one local calendar day: check-in
// only when the day's last event is absent or a check-out, check-out only
// when it is a check-in.
func (s *AttendanceServiceImpl) checkDayState(ctx context.Context, employeeID string, now time.Time, eventType attendance.EventType) error {
	last, err := s.eventRepo.GetLastEventForDay(ctx, employeeID, now.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, attendance.ErrEventNotFound) {
			if eventType == attendance.EventCheckOut {
				return attendance.ErrNotCheckedIn
			}
			return nil
		}
		return err
	}

	if eventType == attendance.EventCheckIn && last.Type == attendance.EventCheckIn {
		return attendance.ErrAlreadyCheckedIn
	}
	if eventType == attendance.EventCheckOut && last.Type == attendance.EventCheckOut {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	events, totalCount, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListEventResponse{}, err
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, mapToEventResponse(event))
	}

	return attendance.ListEventResponse{
		Data:       responses,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func mapToEventResponse(event attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:           event.ID,
		EmployeeID:   event.EmployeeID,
		EmployeeName: event.EmployeeName,
		Type:         string(event.Type),
		Timestamp:    event.Timestamp.Format(time.RFC3339),
		Latitude:     event.Latitude,
		Longitude:    event.Longitude,
		PhotoURL:     event.PhotoURL,
		Method:       event.Method,
	}
}
