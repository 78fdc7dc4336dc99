package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubSalaryService struct {
	response salary.CalculateResponse
}

func (s *stubSalaryService) GetConfig(ctx context.Context) (salary.ConfigResponse, error) {
	return salary.ConfigResponse{}, nil
}

func (s *stubSalaryService) UpdateConfig(ctx context.Context, req salary.UpdateConfigRequest) (salary.ConfigResponse, error) {
	return salary.ConfigResponse{}, nil
}

func (s *stubSalaryService) Calculate(ctx context.Context, req salary.CalculateRequest) (salary.CalculateResponse, error) {
	return s.response, nil
}

func stubResponse() salary.CalculateResponse {
	return salary.CalculateResponse{
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		Results: []salary.CalculationResultResponse{
			{
				EmployeeID:      "emp-1",
				EmployeeName:    "Budi Santoso",
				PeriodStart:     "2024-01-01",
				PeriodEnd:       "2024-01-31",
				Regular:         salary.TimeBucket{Hours: 8, Minutes: 0},
				Overtime:        salary.TimeBucket{Hours: 0, Minutes: 31},
				RegularAmount:   decimal.NewFromInt(399840),
				OvertimeAmount:  decimal.RequireFromString("38734.5"),
				WeekendAmount:   decimal.Zero,
				PaidLeaveAmount: decimal.Zero,
				BonusAmount:     decimal.Zero,
				BonusPercentage: decimal.Zero,
				TotalAmount:     decimal.RequireFromString("438574.5"),
				DaysWorked:      1,
				AvgDailyHours:   8.52,
			},
		},
	}
}

func TestSalaryCSV(t *testing.T) {
	svc := NewReportService(&stubSalaryService{response: stubResponse()})

	data, filename, err := svc.SalaryCSV(context.Background(), salary.CalculateRequest{
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "salary_2024-01-01_2024-01-31.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, reportHeader, records[0])
	row := records[1]
	assert.Equal(t, "emp-1", row[0])
	assert.Equal(t, "Budi Santoso", row[1])
	assert.Equal(t, "480", row[2])
	assert.Equal(t, "31", row[3])
	assert.Equal(t, "38734.5", row[7])
	assert.Equal(t, "438574.5", row[11])
	assert.Equal(t, "1", row[12])
}

func TestSalaryXLSX(t *testing.T) {
	svc := NewReportService(&stubSalaryService{response: stubResponse()})

	data, filename, err := svc.SalaryXLSX(context.Background(), salary.CalculateRequest{
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "salary_2024-01-01_2024-01-31.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(salarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "emp-1", rows[1][0])
	assert.Equal(t, "Budi Santoso", rows[1][1])
}

func TestSalaryCSV_EmptyRun(t *testing.T) {
	svc := NewReportService(&stubSalaryService{response: salary.CalculateResponse{
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-02-29",
	}})

	data, _, err := svc.SalaryCSV(context.Background(), salary.CalculateRequest{
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-02-29",
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
