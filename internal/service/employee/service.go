package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/pkg/email"
)

const maxCodeAttempts = 5

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
	frontendURL  string
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
	frontendURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		emailService: emailService,
		frontendURL:  frontendURL,
	}
}

// adminIDFromContext returns the acting admin's user ID from the JWT claims,
// or empty when the context carries none.
func adminIDFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}

	userID, _ := claims["user_id"].(string)
	return userID
}

// generateEmployeeCode builds the code the attendance QR will encode:
// "HDR-" plus six uppercase hex characters.
func generateEmployeeCode() string {
	id := uuid.New()
	return "HDR-" + strings.ToUpper(id.String()[:6])
}

// Register implements employee.EmployeeService. New registrations always
// start in pending status and must be approved by an admin before the
// employee can check in.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	code, err := s.uniqueEmployeeCode(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeCode: code,
		FullName:     req.FullName,
		Email:        req.Email,
		Position:     req.Position,
		PhoneNumber:  req.PhoneNumber,
		Status:       employee.StatusPending,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee registered",
		"employee_id", created.ID,
		"employee_code", created.EmployeeCode,
	)

	return mapToEmployeeResponse(created), nil
}

// uniqueEmployeeCode retries generation until the code is unused. Six hex
// characters give 16M combinations, collisions are resolved by retrying.
func (s *EmployeeServiceImpl) uniqueEmployeeCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := generateEmployeeCode()

		_, err := s.employeeRepo.GetByEmployeeCode(ctx, code)
		if errors.Is(err, employee.ErrEmployeeCodeNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check employee code: %w", err)
		}
	}

	return "", fmt.Errorf("failed to generate unique employee code after %d attempts", maxCodeAttempts)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToEmployeeResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapToEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       responses,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Approve implements employee.EmployeeService. Only pending registrations can
// be approved; the decision is final and recorded with the acting admin.
func (s *EmployeeServiceImpl) Approve(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.Status != employee.StatusPending {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyProcessed
	}

	now := time.Now()
	adminID := adminIDFromContext(ctx)

	emp.Status = employee.StatusApproved
	emp.ApprovedAt = &now
	if adminID != "" {
		emp.ApprovedBy = &adminID
	}
	emp.RejectionReason = nil

	if err := s.employeeRepo.UpdateStatus(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Notification is best-effort: the approval stands even if the email
	// cannot be delivered.
	if err := s.emailService.SendRegistrationApproved(emp.Email, emp.FullName, emp.EmployeeCode, s.frontendURL); err != nil {
		slog.Error("Failed to send approval email", "employee_id", emp.ID, "error", err)
	}

	slog.Info("Employee approved", "employee_id", emp.ID, "approved_by", adminID)

	return mapToEmployeeResponse(emp), nil
}

// Reject implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Reject(ctx context.Context, id string, req employee.RejectRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.Status != employee.StatusPending {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyProcessed
	}

	emp.Status = employee.StatusRejected
	emp.RejectionReason = &req.Reason

	if err := s.employeeRepo.UpdateStatus(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.emailService.SendRegistrationRejected(emp.Email, emp.FullName, req.Reason); err != nil {
		slog.Error("Failed to send rejection email", "employee_id", emp.ID, "error", err)
	}

	slog.Info("Employee rejected", "employee_id", emp.ID)

	return mapToEmployeeResponse(emp), nil
}

// Suspend implements employee.EmployeeService. A suspended employee keeps
// their history but can no longer check in and drops out of salary runs.
func (s *EmployeeServiceImpl) Suspend(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.Status == employee.StatusSuspended {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadySuspended
	}
	if emp.Status != employee.StatusApproved {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotApproved
	}

	emp.Status = employee.StatusSuspended

	if err := s.employeeRepo.UpdateStatus(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee suspended", "employee_id", emp.ID)

	return mapToEmployeeResponse(emp), nil
}

// Reactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Reactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.Status != employee.StatusSuspended {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotSuspended
	}

	emp.Status = employee.StatusApproved

	if err := s.employeeRepo.UpdateStatus(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee reactivated", "employee_id", emp.ID)

	return mapToEmployeeResponse(emp), nil
}

// Delete implements employee.EmployeeService. Attendance events are kept so
// past salary periods remain reproducible.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id)

	return nil
}

func mapToEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	var approvedAt *string
	if emp.ApprovedAt != nil {
		s := emp.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}

	return employee.EmployeeResponse{
		ID:              emp.ID,
		EmployeeCode:    emp.EmployeeCode,
		FullName:        emp.FullName,
		Email:           emp.Email,
		Position:        emp.Position,
		PhoneNumber:     emp.PhoneNumber,
		Status:          string(emp.Status),
		ApprovedAt:      approvedAt,
		RejectionReason: emp.RejectionReason,
		CreatedAt:       emp.CreatedAt.Format(time.RFC3339),
	}
}
