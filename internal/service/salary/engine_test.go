package salary

import (
	"fmt"
	"testing"
	"time"

	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/domain/employee"
	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventSeq int

func testEvent(t *testing.T, employeeID string, eventType attendance.EventType, timestamp string) attendance.Event {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", timestamp, time.UTC)
	require.NoError(t, err)
	eventSeq++
	return attendance.Event{
		ID:         fmt.Sprintf("evt-%d", eventSeq),
		EmployeeID: employeeID,
		Type:       eventType,
		Timestamp:  ts,
	}
}

func testConfig() salary.Config {
	return salary.Config{
		HourlyRate:         decimal.NewFromInt(50000),
		MinuteRate:         decimal.NewFromInt(833),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		WeekendMultiplier:  decimal.NewFromInt(2),
		PaidLeaveRate:      decimal.NewFromInt(1),
	}
}

func testPeriod() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual.String())
}

func TestComputeEmployeeSalary_SimpleWeekday(t *testing.T) {
	// Tuesday 2024-01-02, 08:00:00 to 16:30:05 = 8h30m5s. The leftover
	// 5 seconds round the pair up to 511 minutes.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T16:30:05"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi Santoso", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 480, result.RegularMinutes)
	assert.Equal(t, 31, result.OvertimeMinutes)
	assert.Equal(t, 0, result.WeekendMinutes)
	assert.Equal(t, salary.TimeBucket{Hours: 8, Minutes: 0}, result.Regular)
	assert.Equal(t, salary.TimeBucket{Hours: 0, Minutes: 31}, result.Overtime)

	assertDecimalEqual(t, "399840", result.RegularAmount)   // 480 * 833
	assertDecimalEqual(t, "38734.5", result.OvertimeAmount) // 31 * 833 * 1.5

	assert.Equal(t, 1, result.DaysWorked)
	assert.InDelta(t, 511.0/60.0, result.AvgDailyHours, 1e-9)
}

func TestComputeEmployeeSalary_RoundingRule(t *testing.T) {
	start, end := testPeriod()
	cases := []struct {
		name        string
		checkOut    string
		wantMinutes int
	}{
		{"exact minute keeps count", "2024-01-02T16:00:00", 480},
		{"one leftover second rounds up", "2024-01-02T16:00:01", 481},
		{"fifty-nine leftover seconds round up by one", "2024-01-02T16:00:59", 481},
		{"full extra minute, no leftover", "2024-01-02T16:01:00", 481},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := []attendance.Event{
				testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
				testEvent(t, "emp-1", attendance.EventCheckOut, c.checkOut),
			}
			result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)
			assert.Equal(t, c.wantMinutes, result.RegularMinutes+result.OvertimeMinutes)
		})
	}
}

func TestComputeEmployeeSalary_WeekendExclusivity(t *testing.T) {
	// Saturday 2024-01-06, ten hours worked: far beyond the 480-minute
	// weekday threshold, yet nothing spills into regular or overtime.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-06T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-06T18:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 600, result.WeekendMinutes)
	assert.Equal(t, 0, result.RegularMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
	assertDecimalEqual(t, "999600", result.WeekendAmount) // 600 * 833 * 2
}

func TestComputeEmployeeSalary_WeekendScenario(t *testing.T) {
	// Saturday 09:00-13:00, exactly four hours.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-06T09:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-06T13:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 240, result.WeekendMinutes)
	assert.Equal(t, salary.TimeBucket{Hours: 4, Minutes: 0}, result.Weekend)
	assert.Equal(t, 0, result.RegularMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
	assert.Equal(t, 1, result.DaysWorked)
}

func TestComputeEmployeeSalary_OvertimeThreshold(t *testing.T) {
	start, end := testPeriod()
	cases := []struct {
		name         string
		checkOut     string
		wantRegular  int
		wantOvertime int
	}{
		{"under threshold", "2024-01-02T12:00:00", 240, 0},
		{"at threshold", "2024-01-02T16:00:00", 480, 0},
		{"over threshold", "2024-01-02T18:45:00", 480, 165},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := []attendance.Event{
				testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
				testEvent(t, "emp-1", attendance.EventCheckOut, c.checkOut),
			}
			result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)
			assert.Equal(t, c.wantRegular, result.RegularMinutes)
			assert.Equal(t, c.wantOvertime, result.OvertimeMinutes)
			assert.LessOrEqual(t, result.RegularMinutes, 480)
			assert.Equal(t, 0, result.WeekendMinutes)
		})
	}
}

func TestComputeEmployeeSalary_PositionalPairing(t *testing.T) {
	// Three check-ins, two check-outs on the same day. Sorted independently,
	// the i-th check-in pairs the i-th check-out: (08:00, 10:00) and
	// (09:00, 12:00). The trailing 14:00 check-in is dropped.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T09:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T12:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T10:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T14:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	// 120 + 180 minutes, nothing from the unmatched check-in.
	assert.Equal(t, 300, result.RegularMinutes)
	assert.Equal(t, 1, result.DaysWorked)
}

func TestComputeEmployeeSalary_UnmatchedCheckoutScenario(t *testing.T) {
	// Two check-ins, one check-out: only the first pair counts, but the day
	// still counts as worked.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T12:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T13:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 240, result.RegularMinutes)
	assert.Equal(t, 1, result.DaysWorked)
}

func TestComputeEmployeeSalary_BonusComposition(t *testing.T) {
	// Weekday 08:00-16:00 = 480 regular minutes, subtotal 399840.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T16:00:00"),
	}
	start, end := testPeriod()
	bonus := &salary.BonusEntry{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(100000),
		Percentage: decimal.NewFromInt(10),
	}

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, bonus)

	// 100000 + 10% of 399840; the percentage never compounds the flat part.
	assertDecimalEqual(t, "139984", result.BonusAmount)
	assertDecimalEqual(t, "10", result.BonusPercentage)
	assertDecimalEqual(t, "539824", result.TotalAmount)
}

func TestComputeEmployeeSalary_BonusOnlyNoAttendance(t *testing.T) {
	start, end := testPeriod()
	bonus := &salary.BonusEntry{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(500000),
		Percentage: decimal.Zero,
	}

	result := ComputeEmployeeSalary("emp-1", "Budi", nil, testConfig(), start, end, 0, bonus)

	assert.Equal(t, 0, result.RegularMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
	assert.Equal(t, 0, result.WeekendMinutes)
	assertDecimalEqual(t, "500000", result.BonusAmount)
	assertDecimalEqual(t, "500000", result.TotalAmount)
	assert.Equal(t, 0, result.DaysWorked)
	assert.Zero(t, result.AvgDailyHours)
}

func TestComputeEmployeeSalary_PaidLeave(t *testing.T) {
	start, end := testPeriod()
	cfg := testConfig()
	cfg.PaidLeaveRate = decimal.NewFromFloat(0.5)

	result := ComputeEmployeeSalary("emp-1", "Budi", nil, cfg, start, end, 16, nil)

	assert.Equal(t, 960, result.PaidLeaveMinutes)
	assert.Equal(t, salary.TimeBucket{Hours: 16, Minutes: 0}, result.PaidLeave)
	// Paid leave never splits into overtime or weekend.
	assert.Equal(t, 0, result.OvertimeMinutes)
	assert.Equal(t, 0, result.WeekendMinutes)
	assertDecimalEqual(t, "399840", result.PaidLeaveAmount) // 960 * 833 * 0.5
	assert.Equal(t, 0, result.DaysWorked)
}

func TestComputeEmployeeSalary_TotalInvariant(t *testing.T) {
	// Mixed period: weekday with overtime, weekend day, paid leave, bonus.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T18:30:30"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-06T09:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-06T14:15:00"),
	}
	start, end := testPeriod()
	bonus := &salary.BonusEntry{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(75000),
		Percentage: decimal.NewFromInt(5),
	}

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 8, bonus)

	expected := result.RegularAmount.
		Add(result.OvertimeAmount).
		Add(result.WeekendAmount).
		Add(result.PaidLeaveAmount).
		Add(result.BonusAmount)
	assert.True(t, expected.Equal(result.TotalAmount),
		"total %s != sum of buckets %s", result.TotalAmount, expected)
}

func TestComputeEmployeeSalary_PeriodWindow(t *testing.T) {
	// Only events inside the inclusive window count; the end boundary
	// extends to 23:59:59 of the last day.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2023-12-31T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2023-12-31T16:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-31T22:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-31T23:59:59"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-02-01T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-02-01T16:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	// Only the January 31st session: 22:00:00 to 23:59:59 = 1h59m59s -> 120.
	assert.Equal(t, 120, result.RegularMinutes+result.OvertimeMinutes+result.WeekendMinutes)
	assert.Equal(t, 1, result.DaysWorked)
}

func TestComputeEmployeeSalary_IgnoresOtherEmployees(t *testing.T) {
	events := []attendance.Event{
		testEvent(t, "emp-2", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-2", attendance.EventCheckOut, "2024-01-02T16:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 0, result.RegularMinutes)
	assert.Equal(t, 0, result.DaysWorked)
	assertDecimalEqual(t, "0", result.TotalAmount)
}

func TestComputeEmployeeSalary_MultiDayAccumulation(t *testing.T) {
	// Two weekdays of 9h each: the threshold applies per day, so each day
	// contributes 480 regular + 60 overtime rather than pooling.
	events := []attendance.Event{
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-02T17:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckIn, "2024-01-03T08:00:00"),
		testEvent(t, "emp-1", attendance.EventCheckOut, "2024-01-03T17:00:00"),
	}
	start, end := testPeriod()

	result := ComputeEmployeeSalary("emp-1", "Budi", events, testConfig(), start, end, 0, nil)

	assert.Equal(t, 960, result.RegularMinutes)
	assert.Equal(t, 120, result.OvertimeMinutes)
	assert.Equal(t, 2, result.DaysWorked)
	assert.InDelta(t, 9.0, result.AvgDailyHours, 1e-9)
}

func TestComputeAllSalaries_EligibilityFilter(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-1", FullName: "Budi", Status: employee.StatusApproved},
		{ID: "emp-2", FullName: "Sari", Status: employee.StatusPending},
		{ID: "emp-3", FullName: "Tono", Status: employee.StatusSuspended},
		{ID: "emp-4", FullName: "Rina", Status: employee.StatusApproved},
	}
	// emp-2 has attendance in range but is not approved.
	events := []attendance.Event{
		testEvent(t, "emp-2", attendance.EventCheckIn, "2024-01-02T08:00:00"),
		testEvent(t, "emp-2", attendance.EventCheckOut, "2024-01-02T16:00:00"),
	}
	start, end := testPeriod()

	results := ComputeAllSalaries(employees, events, testConfig(), start, end, nil, nil)

	require.Len(t, results, 2)
	// Roster order is preserved, no implicit sort.
	assert.Equal(t, "emp-1", results[0].EmployeeID)
	assert.Equal(t, "emp-4", results[1].EmployeeID)
}

func TestComputeAllSalaries_OverrideLookups(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-1", FullName: "Budi", Status: employee.StatusApproved},
		{ID: "emp-2", FullName: "Sari", Status: employee.StatusApproved},
	}
	start, end := testPeriod()
	paidLeave := map[string]float64{"emp-1": 8}
	bonuses := map[string]salary.BonusEntry{
		"emp-2": {EmployeeID: "emp-2", Amount: decimal.NewFromInt(250000), Percentage: decimal.Zero},
	}

	results := ComputeAllSalaries(employees, nil, testConfig(), start, end, paidLeave, bonuses)

	require.Len(t, results, 2)
	assert.Equal(t, 480, results[0].PaidLeaveMinutes)
	assertDecimalEqual(t, "0", results[0].BonusAmount)
	assert.Equal(t, 0, results[1].PaidLeaveMinutes)
	assertDecimalEqual(t, "250000", results[1].BonusAmount)
}
