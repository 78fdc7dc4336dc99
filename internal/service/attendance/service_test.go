package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/config"
	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	event.CreatedAt = time.Now()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) GetLastEventForDay(ctx context.Context, employeeID string, dateLocal string) (attendance.Event, error) {
	var last *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.EmployeeID != employeeID || e.Timestamp.Format("2006-01-02") != dateLocal {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = &f.events[i]
		}
	}
	if last == nil {
		return attendance.Event{}, attendance.ErrEventNotFound
	}
	return *last, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	return f.events, int64(len(f.events)), nil
}

func (f *fakeEventRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	return f.events, nil
}

type fakeEmployeeRepo struct {
	byCode map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	emp, ok := f.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeCodeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByStatus(ctx context.Context, status employee.Status) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) UpdateStatus(ctx context.Context, emp employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestService(office config.OfficeConfig) (attendance.AttendanceService, *fakeEventRepo) {
	eventRepo := &fakeEventRepo{}
	employeeRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"HDR-A1B2C3": {ID: "emp-1", EmployeeCode: "HDR-A1B2C3", FullName: "Budi", Status: employee.StatusApproved},
		"HDR-D4E5F6": {ID: "emp-2", EmployeeCode: "HDR-D4E5F6", FullName: "Sari", Status: employee.StatusPending},
	}}
	return NewAttendanceService(eventRepo, employeeRepo, office), eventRepo
}

func TestCheckIn_Success(t *testing.T) {
	svc, eventRepo := newTestService(config.OfficeConfig{})

	resp, err := svc.CheckIn(context.Background(), attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, string(attendance.EventCheckIn), resp.Type)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Budi", *resp.EmployeeName)
	assert.Len(t, eventRepo.events, 1)
}

func TestCheckIn_TwiceRejected(t *testing.T) {
	svc, _ := newTestService(config.OfficeConfig{})
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(config.OfficeConfig{})

	_, err := svc.CheckOut(context.Background(), attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckInOut_Alternation(t *testing.T) {
	svc, eventRepo := newTestService(config.OfficeConfig{})
	ctx := context.Background()
	req := attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"}

	_, err := svc.CheckIn(ctx, req)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, req)
	require.NoError(t, err)

	// Double check-out is rejected, a second session is allowed.
	_, err = svc.CheckOut(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	_, err = svc.CheckIn(ctx, req)
	require.NoError(t, err)

	assert.Len(t, eventRepo.events, 3)
}

func TestCheckIn_PendingEmployeeRejected(t *testing.T) {
	svc, _ := newTestService(config.OfficeConfig{})

	_, err := svc.CheckIn(context.Background(), attendance.CheckRequest{EmployeeCode: "HDR-D4E5F6"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotApproved)
}

func TestCheckIn_UnknownCodeRejected(t *testing.T) {
	svc, _ := newTestService(config.OfficeConfig{})

	_, err := svc.CheckIn(context.Background(), attendance.CheckRequest{EmployeeCode: "HDR-FFFFFF"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeNotFound)
}

func TestCheckIn_InvalidCodeFormat(t *testing.T) {
	svc, _ := newTestService(config.OfficeConfig{})

	_, err := svc.CheckIn(context.Background(), attendance.CheckRequest{EmployeeCode: "not-a-code"})
	assert.Error(t, err)
}

func TestCheckIn_Geofence(t *testing.T) {
	// Office at Monas, Jakarta with a 200m radius.
	office := config.OfficeConfig{Latitude: -6.1754, Longitude: 106.8272, RadiusMeters: 200}
	svc, _ := newTestService(office)
	ctx := context.Background()

	farLat, farLon := -6.2607, 106.8105 // ~10km away
	_, err := svc.CheckIn(ctx, attendance.CheckRequest{
		EmployeeCode: "HDR-A1B2C3",
		Latitude:     &farLat,
		Longitude:    &farLon,
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideOffice)

	nearLat, nearLon := -6.1755, 106.8273
	_, err = svc.CheckIn(ctx, attendance.CheckRequest{
		EmployeeCode: "HDR-A1B2C3",
		Latitude:     &nearLat,
		Longitude:    &nearLon,
	})
	require.NoError(t, err)

	// Events without coordinates bypass the check.
	_, err = svc.CheckOut(ctx, attendance.CheckRequest{EmployeeCode: "HDR-A1B2C3"})
	require.NoError(t, err)
}
