package salary

import (
	"math"
	"sort"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// standardDailyMinutes is the weekday threshold: the first 8 hours of a
// weekday count as regular time, everything beyond as overtime.
const standardDailyMinutes = 480

var hundred = decimal.NewFromInt(100)

type dayEvents struct {
	date      time.Time
	checkIns  []time.Time
	checkOuts []time.Time
}

// ComputeEmployeeSalary classifies one employee's raw attendance events for
// the inclusive [periodStart, periodEnd] calendar window into priced time
// buckets. It is a pure function: no I/O, inputs are never mutated.
//
// Pairing is positional: per day, the i-th check-in is matched with the i-th
// check-out after sorting each list independently. Trailing unmatched events
// contribute no minutes. A pair with leftover seconds rounds up to the next
// whole minute. Minutes worked on Saturday or Sunday all land in the weekend
// bucket and are never split against the overtime threshold.
func ComputeEmployeeSalary(
	employeeID string,
	employeeName string,
	events []attendance.Event,
	cfg salary.Config,
	periodStart time.Time,
	periodEnd time.Time,
	paidLeaveHours float64,
	bonus *salary.BonusEntry,
) salary.CalculationResult {
	loc := periodStart.Location()
	windowStart := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc)
	// The end boundary extends to 23:59:59 of the last day.
	windowEnd := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 23, 59, 59, 0, loc)

	days := make(map[string]*dayEvents)
	for _, event := range events {
		if event.EmployeeID != employeeID {
			continue
		}
		ts := event.Timestamp.In(loc)
		if ts.Before(windowStart) || ts.After(windowEnd) {
			continue
		}

		key := ts.Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = &dayEvents{date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc)}
			days[key] = day
		}

		switch event.Type {
		case attendance.EventCheckIn:
			day.checkIns = append(day.checkIns, ts)
		case attendance.EventCheckOut:
			day.checkOuts = append(day.checkOuts, ts)
		}
	}

	var (
		regularMinutes     int
		overtimeMinutes    int
		weekendMinutes     int
		daysWorked         int
		totalWorkedMinutes int
	)

	for _, day := range days {
		sort.Slice(day.checkIns, func(i, j int) bool { return day.checkIns[i].Before(day.checkIns[j]) })
		sort.Slice(day.checkOuts, func(i, j int) bool { return day.checkOuts[i].Before(day.checkOuts[j]) })

		pairs := len(day.checkIns)
		if len(day.checkOuts) < pairs {
			pairs = len(day.checkOuts)
		}

		dailyMinutes := 0
		for i := 0; i < pairs; i++ {
			dailyMinutes += pairMinutes(day.checkIns[i], day.checkOuts[i])
		}

		// One check-in and one check-out mark the day as worked, even when
		// the positional pairing yields zero minutes.
		if len(day.checkIns) > 0 && len(day.checkOuts) > 0 {
			daysWorked++
			totalWorkedMinutes += dailyMinutes
		}

		switch day.date.Weekday() {
		case time.Saturday, time.Sunday:
			weekendMinutes += dailyMinutes
		default:
			if dailyMinutes > standardDailyMinutes {
				regularMinutes += standardDailyMinutes
				overtimeMinutes += dailyMinutes - standardDailyMinutes
			} else {
				regularMinutes += dailyMinutes
			}
		}
	}

	// Paid leave is a flat addition, independent of actual attendance.
	paidLeaveMinutes := int(math.Round(paidLeaveHours * 60))

	regularAmount := minuteAmount(regularMinutes, cfg.MinuteRate, decimal.NewFromInt(1))
	overtimeAmount := minuteAmount(overtimeMinutes, cfg.MinuteRate, cfg.OvertimeMultiplier)
	weekendAmount := minuteAmount(weekendMinutes, cfg.MinuteRate, cfg.WeekendMultiplier)
	paidLeaveAmount := minuteAmount(paidLeaveMinutes, cfg.MinuteRate, cfg.PaidLeaveRate)

	subtotal := regularAmount.Add(overtimeAmount).Add(weekendAmount).Add(paidLeaveAmount)

	bonusAmount := decimal.Zero
	bonusPercentage := decimal.Zero
	if bonus != nil {
		bonusAmount = bonus.Amount
		bonusPercentage = bonus.Percentage
		if bonus.Percentage.IsPositive() {
			// The percentage applies to the pre-bonus subtotal only, never
			// to the flat bonus amount.
			bonusAmount = bonusAmount.Add(subtotal.Mul(bonus.Percentage).Div(hundred))
		}
	}

	avgDailyHours := 0.0
	if daysWorked > 0 {
		// Averaged over raw worked minutes, before bucket splitting.
		avgDailyHours = float64(totalWorkedMinutes) / float64(daysWorked) / 60
	}

	return salary.CalculationResult{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		PeriodStart:  windowStart,
		PeriodEnd:    windowEnd,

		RegularMinutes:   regularMinutes,
		OvertimeMinutes:  overtimeMinutes,
		WeekendMinutes:   weekendMinutes,
		PaidLeaveMinutes: paidLeaveMinutes,

		Regular:   salary.NewTimeBucket(regularMinutes),
		Overtime:  salary.NewTimeBucket(overtimeMinutes),
		Weekend:   salary.NewTimeBucket(weekendMinutes),
		PaidLeave: salary.NewTimeBucket(paidLeaveMinutes),

		RegularAmount:   regularAmount,
		OvertimeAmount:  overtimeAmount,
		WeekendAmount:   weekendAmount,
		PaidLeaveAmount: paidLeaveAmount,
		BonusAmount:     bonusAmount,
		BonusPercentage: bonusPercentage,
		TotalAmount:     subtotal.Add(bonusAmount),

		DaysWorked:    daysWorked,
		AvgDailyHours: avgDailyHours,
	}
}

// pairMinutes converts the elapsed time of one check-in/check-out pair to
// whole minutes. Any leftover seconds round up to one extra minute; partial
// minutes are never truncated or rounded to nearest. A check-out at or before
// its paired check-in contributes nothing.
func pairMinutes(checkIn, checkOut time.Time) int {
	elapsed := checkOut.Sub(checkIn)
	if elapsed <= 0 {
		return 0
	}

	minutes := int(elapsed / time.Minute)
	leftoverSeconds := int((elapsed % time.Minute) / time.Second)
	if leftoverSeconds > 0 {
		minutes++
	}
	return minutes
}

func minuteAmount(minutes int, minuteRate, multiplier decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(minuteRate).Mul(multiplier)
}

// ComputeAllSalaries runs ComputeEmployeeSalary for every approved employee
// in the roster, in roster order. Paid-leave hours and bonus entries are
// looked up per employee; a missing entry means zero.
func ComputeAllSalaries(
	employees []employee.Employee,
	events []attendance.Event,
	cfg salary.Config,
	periodStart time.Time,
	periodEnd time.Time,
	paidLeave map[string]float64,
	bonuses map[string]salary.BonusEntry,
) []salary.CalculationResult {
	results := make([]salary.CalculationResult, 0, len(employees))
	for _, emp := range employees {
		if !emp.IsApproved() {
			continue
		}

		var bonus *salary.BonusEntry
		if entry, ok := bonuses[emp.ID]; ok {
			bonus = &entry
		}

		results = append(results, ComputeEmployeeSalary(
			emp.ID,
			emp.FullName,
			events,
			cfg,
			periodStart,
			periodEnd,
			paidLeave[emp.ID],
			bonus,
		))
	}
	return results
}
