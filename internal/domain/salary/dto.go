package salary

import (
	"fmt"

	"github.com/hadirin/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SALARY DTOs
// ========================================

type UpdateConfigRequest struct {
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	MinuteRate         *decimal.Decimal `json:"minute_rate,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	WeekendMultiplier  *decimal.Decimal `json:"weekend_multiplier,omitempty"`
	PaidLeaveRate      *decimal.Decimal `json:"paid_leave_rate,omitempty"`
}

var one = decimal.NewFromInt(1)

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, rate := range map[string]*decimal.Decimal{
		"hourly_rate":     r.HourlyRate,
		"minute_rate":     r.MinuteRate,
		"paid_leave_rate": r.PaidLeaveRate,
	} {
		if rate != nil && rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must not be negative", field),
			})
		}
	}

	for field, mult := range map[string]*decimal.Decimal{
		"overtime_multiplier": r.OvertimeMultiplier,
		"weekend_multiplier":  r.WeekendMultiplier,
	} {
		if mult != nil && mult.LessThan(one) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least 1", field),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BonusEntryRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Reason     *string         `json:"reason,omitempty"`
}

type CalculateRequest struct {
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	PaidLeave   map[string]float64  `json:"paid_leave,omitempty"`
	Bonuses     []BonusEntryRequest `json:"bonuses,omitempty"`
}

var hundred = decimal.NewFromInt(100)

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	periodStart, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	periodEnd, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && periodEnd.Before(periodStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	for employeeID, hours := range r.PaidLeave {
		if hours < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "paid_leave." + employeeID,
				Message: "paid leave hours must not be negative",
			})
		}
	}

	for i, bonus := range r.Bonuses {
		field := fmt.Sprintf("bonuses[%d]", i)
		if validator.IsEmpty(bonus.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".employee_id",
				Message: "employee_id is required",
			})
		}
		if bonus.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".amount",
				Message: "amount must not be negative",
			})
		}
		if bonus.Percentage.IsNegative() || bonus.Percentage.GreaterThan(hundred) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".percentage",
				Message: "percentage must be between 0 and 100",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConfigResponse struct {
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	MinuteRate         decimal.Decimal `json:"minute_rate"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	WeekendMultiplier  decimal.Decimal `json:"weekend_multiplier"`
	PaidLeaveRate      decimal.Decimal `json:"paid_leave_rate"`
	UpdatedAt          *string         `json:"updated_at,omitempty"`
}

type CalculationResultResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`

	Regular   TimeBucket `json:"regular"`
	Overtime  TimeBucket `json:"overtime"`
	Weekend   TimeBucket `json:"weekend"`
	PaidLeave TimeBucket `json:"paid_leave"`

	RegularAmount   decimal.Decimal `json:"regular_amount"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	WeekendAmount   decimal.Decimal `json:"weekend_amount"`
	PaidLeaveAmount decimal.Decimal `json:"paid_leave_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	BonusPercentage decimal.Decimal `json:"bonus_percentage"`
	TotalAmount     decimal.Decimal `json:"total_amount"`

	DaysWorked    int     `json:"days_worked"`
	AvgDailyHours float64 `json:"avg_daily_hours"`
}

type CalculateResponse struct {
	PeriodStart string                      `json:"period_start"`
	PeriodEnd   string                      `json:"period_end"`
	Results     []CalculationResultResponse `json:"results"`
}
