package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the admin-controlled salary rate configuration. A single active
// row is persisted; it is created with defaults on first use.
//
// MinuteRate is trusted as given and never derived from HourlyRate, even when
// the two disagree. Recomputing it here would silently change payouts.
type Config struct {
	ID                 string
	HourlyRate         decimal.Decimal
	MinuteRate         decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	WeekendMultiplier  decimal.Decimal
	PaidLeaveRate      decimal.Decimal
	UpdatedAt          time.Time
}

// DefaultConfig returns the configuration used before an admin has saved one.
func DefaultConfig() Config {
	return Config{
		HourlyRate:         decimal.NewFromInt(50000),
		MinuteRate:         decimal.NewFromInt(833),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		WeekendMultiplier:  decimal.NewFromInt(2),
		PaidLeaveRate:      decimal.NewFromInt(1),
	}
}

// BonusEntry is a discretionary addition for one employee in one calculation
// run: a flat amount plus a percentage of the pre-bonus subtotal. Entries are
// supplied per request and never persisted.
type BonusEntry struct {
	EmployeeID string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Reason     *string
}

// TimeBucket expresses a minute total as whole hours plus remainder minutes.
type TimeBucket struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func NewTimeBucket(totalMinutes int) TimeBucket {
	return TimeBucket{
		Hours:   totalMinutes / 60,
		Minutes: totalMinutes % 60,
	}
}

// CalculationResult is the engine output for one employee and one period.
// It is computed fresh on every run and never persisted.
type CalculationResult struct {
	EmployeeID   string
	EmployeeName string
	PeriodStart  time.Time
	PeriodEnd    time.Time

	RegularMinutes   int
	OvertimeMinutes  int
	WeekendMinutes   int
	PaidLeaveMinutes int

	Regular   TimeBucket
	Overtime  TimeBucket
	Weekend   TimeBucket
	PaidLeave TimeBucket

	RegularAmount   decimal.Decimal
	OvertimeAmount  decimal.Decimal
	WeekendAmount   decimal.Decimal
	PaidLeaveAmount decimal.Decimal
	BonusAmount     decimal.Decimal
	BonusPercentage decimal.Decimal
	TotalAmount     decimal.Decimal

	DaysWorked    int
	AvgDailyHours float64
}
