package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/hadirin/attendance-backend-go/internal/pkg/database"
	"github.com/hadirin/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type SalaryServiceImpl struct {
	db *database.DB
	salary.ConfigRepository
	employee.EmployeeRepository
	attendance.EventRepository
}

func NewSalaryService(
	db *database.DB,
	configRepo salary.ConfigRepository,
	employeeRepo employee.EmployeeRepository,
	eventRepo attendance.EventRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:                 db,
		ConfigRepository:   configRepo,
		EmployeeRepository: employeeRepo,
		EventRepository:    eventRepo,
	}
}

// GetConfig implements salary.SalaryService.
func (s *SalaryServiceImpl) GetConfig(ctx context.Context) (salary.ConfigResponse, error) {
	cfg, err := s.activeConfig(ctx)
	if err != nil {
		return salary.ConfigResponse{}, err
	}

	return mapToConfigResponse(cfg), nil
}

// UpdateConfig implements salary.SalaryService.
func (s *SalaryServiceImpl) UpdateConfig(ctx context.Context, req salary.UpdateConfigRequest) (salary.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ConfigResponse{}, err
	}

	var updated salary.Config
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := s.activeConfig(txCtx)
		if err != nil {
			return err
		}

		// Apply updates. MinuteRate is stored exactly as submitted; it is
		// not derived from HourlyRate (caller responsibility).
		if req.HourlyRate != nil {
			current.HourlyRate = *req.HourlyRate
		}
		if req.MinuteRate != nil {
			current.MinuteRate = *req.MinuteRate
		}
		if req.OvertimeMultiplier != nil {
			current.OvertimeMultiplier = *req.OvertimeMultiplier
		}
		if req.WeekendMultiplier != nil {
			current.WeekendMultiplier = *req.WeekendMultiplier
		}
		if req.PaidLeaveRate != nil {
			current.PaidLeaveRate = *req.PaidLeaveRate
		}

		updated, err = s.ConfigRepository.Upsert(txCtx, current)
		return err
	})
	if err != nil {
		return salary.ConfigResponse{}, err
	}

	return mapToConfigResponse(updated), nil
}

// Calculate implements salary.SalaryService. Results are computed fresh on
// every invocation and never persisted; export is a projection of this output.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, req salary.CalculateRequest) (salary.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.CalculateResponse{}, err
	}

	periodStart, err := time.ParseInLocation("2006-01-02", req.PeriodStart, time.Local)
	if err != nil {
		return salary.CalculateResponse{}, fmt.Errorf("failed to parse period start: %w", err)
	}
	periodEnd, err := time.ParseInLocation("2006-01-02", req.PeriodEnd, time.Local)
	if err != nil {
		return salary.CalculateResponse{}, fmt.Errorf("failed to parse period end: %w", err)
	}

	cfg, err := s.activeConfig(ctx)
	if err != nil {
		return salary.CalculateResponse{}, err
	}

	roster, err := s.EmployeeRepository.ListByStatus(ctx, employee.StatusApproved)
	if err != nil {
		return salary.CalculateResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	windowStart := periodStart
	windowEnd := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 23, 59, 59, 0, periodEnd.Location())
	events, err := s.EventRepository.ListByPeriod(ctx, windowStart, windowEnd)
	if err != nil {
		return salary.CalculateResponse{}, fmt.Errorf("failed to load attendance events: %w", err)
	}

	bonuses := make(map[string]salary.BonusEntry, len(req.Bonuses))
	for _, bonus := range req.Bonuses {
		bonuses[bonus.EmployeeID] = salary.BonusEntry{
			EmployeeID: bonus.EmployeeID,
			Amount:     bonus.Amount,
			Percentage: bonus.Percentage,
			Reason:     bonus.Reason,
		}
	}

	results := ComputeAllSalaries(roster, events, cfg, periodStart, periodEnd, req.PaidLeave, bonuses)

	response := salary.CalculateResponse{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Results:     make([]salary.CalculationResultResponse, 0, len(results)),
	}
	for _, result := range results {
		response.Results = append(response.Results, mapToResultResponse(result))
	}

	return response, nil
}

// activeConfig returns the persisted configuration, falling back to defaults
// before an admin has saved one.
func (s *SalaryServiceImpl) activeConfig(ctx context.Context) (salary.Config, error) {
	cfg, err := s.ConfigRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, salary.ErrConfigNotFound) {
			return salary.DefaultConfig(), nil
		}
		return salary.Config{}, err
	}
	return cfg, nil
}

func mapToConfigResponse(cfg salary.Config) salary.ConfigResponse {
	var updatedAt *string
	if !cfg.UpdatedAt.IsZero() {
		str := cfg.UpdatedAt.Format(time.RFC3339)
		updatedAt = &str
	}

	return salary.ConfigResponse{
		HourlyRate:         cfg.HourlyRate,
		MinuteRate:         cfg.MinuteRate,
		OvertimeMultiplier: cfg.OvertimeMultiplier,
		WeekendMultiplier:  cfg.WeekendMultiplier,
		PaidLeaveRate:      cfg.PaidLeaveRate,
		UpdatedAt:          updatedAt,
	}
}

func mapToResultResponse(result salary.CalculationResult) salary.CalculationResultResponse {
	return salary.CalculationResultResponse{
		EmployeeID:   result.EmployeeID,
		EmployeeName: result.EmployeeName,
		PeriodStart:  result.PeriodStart.Format("2006-01-02"),
		PeriodEnd:    result.PeriodEnd.Format("2006-01-02"),

		Regular:   result.Regular,
		Overtime:  result.Overtime,
		Weekend:   result.Weekend,
		PaidLeave: result.PaidLeave,

		RegularAmount:   result.RegularAmount,
		OvertimeAmount:  result.OvertimeAmount,
		WeekendAmount:   result.WeekendAmount,
		PaidLeaveAmount: result.PaidLeaveAmount,
		BonusAmount:     result.BonusAmount,
		BonusPercentage: result.BonusPercentage,
		TotalAmount:     result.TotalAmount,

		DaysWorked:    result.DaysWorked,
		AvgDailyHours: result.AvgDailyHours,
	}
}
