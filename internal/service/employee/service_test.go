package employee

import (
	"context"
	"testing"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (m *memoryEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = emp.CreatedAt
	m.employees[emp.ID] = emp
	return emp, nil
}

func (m *memoryEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memoryEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeCodeNotFound
}

func (m *memoryEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (m *memoryEmployeeRepo) ListByStatus(ctx context.Context, status employee.Status) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range m.employees {
		if emp.Status == status {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memoryEmployeeRepo) UpdateStatus(ctx context.Context, emp employee.Employee) error {
	stored, ok := m.employees[emp.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	stored.Status = emp.Status
	stored.ApprovedAt = emp.ApprovedAt
	stored.ApprovedBy = emp.ApprovedBy
	stored.RejectionReason = emp.RejectionReason
	m.employees[emp.ID] = stored
	return nil
}

func (m *memoryEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

type recordingEmailService struct {
	approved []string
	rejected []string
}

func (r *recordingEmailService) SendRegistrationApproved(to, employeeName, employeeCode, loginURL string) error {
	r.approved = append(r.approved, to)
	return nil
}

func (r *recordingEmailService) SendRegistrationRejected(to, employeeName, reason string) error {
	r.rejected = append(r.rejected, to)
	return nil
}

func newTestService() (employee.EmployeeService, *memoryEmployeeRepo, *recordingEmailService) {
	repo := newMemoryEmployeeRepo()
	emails := &recordingEmailService{}
	return NewEmployeeService(repo, emails, "http://localhost:3000"), repo, emails
}

func register(t *testing.T, svc employee.EmployeeService, email string) employee.EmployeeResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), employee.RegisterRequest{
		FullName: "Budi Santoso",
		Email:    email,
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestService()

	resp := register(t, svc, "budi@example.com")

	assert.Equal(t, string(employee.StatusPending), resp.Status)
	assert.Regexp(t, `^HDR-[0-9A-F]{6}$`, resp.EmployeeCode)
	assert.NotEmpty(t, resp.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "budi@example.com")

	_, err := svc.Register(context.Background(), employee.RegisterRequest{
		FullName: "Budi Kedua",
		Email:    "budi@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestRegister_InvalidRequest(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), employee.RegisterRequest{Email: "budi@example.com"})
	assert.Error(t, err)
}

func TestApprove(t *testing.T) {
	svc, _, emails := newTestService()
	resp := register(t, svc, "budi@example.com")

	approved, err := svc.Approve(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, string(employee.StatusApproved), approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, []string{"budi@example.com"}, emails.approved)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	svc, _, _ := newTestService()
	resp := register(t, svc, "budi@example.com")
	ctx := context.Background()

	_, err := svc.Approve(ctx, resp.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, resp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyProcessed)
}

func TestReject(t *testing.T) {
	svc, _, emails := newTestService()
	resp := register(t, svc, "budi@example.com")

	rejected, err := svc.Reject(context.Background(), resp.ID, employee.RejectRequest{Reason: "Data tidak lengkap"})
	require.NoError(t, err)

	assert.Equal(t, string(employee.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Data tidak lengkap", *rejected.RejectionReason)
	assert.Equal(t, []string{"budi@example.com"}, emails.rejected)
}

func TestReject_RequiresReason(t *testing.T) {
	svc, _, _ := newTestService()
	resp := register(t, svc, "budi@example.com")

	_, err := svc.Reject(context.Background(), resp.ID, employee.RejectRequest{})
	assert.Error(t, err)
}

func TestSuspendAndReactivate(t *testing.T) {
	svc, _, _ := newTestService()
	resp := register(t, svc, "budi@example.com")
	ctx := context.Background()

	// Pending employees cannot be suspended.
	_, err := svc.Suspend(ctx, resp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotApproved)

	_, err = svc.Approve(ctx, resp.ID)
	require.NoError(t, err)

	suspended, err := svc.Suspend(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(employee.StatusSuspended), suspended.Status)

	_, err = svc.Suspend(ctx, resp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadySuspended)

	reactivated, err := svc.Reactivate(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(employee.StatusApproved), reactivated.Status)

	_, err = svc.Reactivate(ctx, resp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotSuspended)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	resp := register(t, svc, "budi@example.com")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, resp.ID))
	assert.Empty(t, repo.employees)

	err := svc.Delete(ctx, resp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
