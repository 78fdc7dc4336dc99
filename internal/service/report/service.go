package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/xuri/excelize/v2"
)

// ReportService renders a salary calculation run as a downloadable file.
// Reports are generated on the fly from the same engine output the JSON
// endpoint returns, nothing is persisted.
type ReportService interface {
	// SalaryCSV returns the report bytes and a suggested filename.
	SalaryCSV(ctx context.Context, req salary.CalculateRequest) ([]byte, string, error)

	// SalaryXLSX returns the report bytes and a suggested filename.
	SalaryXLSX(ctx context.Context, req salary.CalculateRequest) ([]byte, string, error)
}

type ReportServiceImpl struct {
	salaryService salary.SalaryService
}

func NewReportService(salaryService salary.SalaryService) ReportService {
	return &ReportServiceImpl{salaryService: salaryService}
}

var reportHeader = []string{
	"Employee ID",
	"Employee Name",
	"Regular (minutes)",
	"Overtime (minutes)",
	"Weekend (minutes)",
	"Paid Leave (minutes)",
	"Regular Amount",
	"Overtime Amount",
	"Weekend Amount",
	"Paid Leave Amount",
	"Bonus Amount",
	"Total Amount",
	"Days Worked",
	"Avg Daily Hours",
}

func reportRow(result salary.CalculationResultResponse) []string {
	return []string{
		result.EmployeeID,
		result.EmployeeName,
		strconv.Itoa(result.Regular.Hours*60 + result.Regular.Minutes),
		strconv.Itoa(result.Overtime.Hours*60 + result.Overtime.Minutes),
		strconv.Itoa(result.Weekend.Hours*60 + result.Weekend.Minutes),
		strconv.Itoa(result.PaidLeave.Hours*60 + result.PaidLeave.Minutes),
		result.RegularAmount.String(),
		result.OvertimeAmount.String(),
		result.WeekendAmount.String(),
		result.PaidLeaveAmount.String(),
		result.BonusAmount.String(),
		result.TotalAmount.String(),
		strconv.Itoa(result.DaysWorked),
		strconv.FormatFloat(result.AvgDailyHours, 'f', 2, 64),
	}
}

func reportFilename(calc salary.CalculateResponse, ext string) string {
	return fmt.Sprintf("salary_%s_%s.%s", calc.PeriodStart, calc.PeriodEnd, ext)
}

// SalaryCSV implements ReportService.
func (s *ReportServiceImpl) SalaryCSV(ctx context.Context, req salary.CalculateRequest) ([]byte, string, error) {
	calc, err := s.salaryService.Calculate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, result := range calc.Results {
		if err := w.Write(reportRow(result)); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), reportFilename(calc, "csv"), nil
}

const salarySheet = "Salary"

// SalaryXLSX implements ReportService.
func (s *ReportServiceImpl) SalaryXLSX(ctx context.Context, req salary.CalculateRequest) ([]byte, string, error) {
	calc, err := s.salaryService.Calculate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salarySheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := writeSheetRow(f, 1, headerCells()); err != nil {
		return nil, "", err
	}
	for i, result := range calc.Results {
		cells := make([]interface{}, 0, len(reportHeader))
		for _, cell := range reportRow(result) {
			cells = append(cells, cell)
		}
		if err := writeSheetRow(f, i+2, cells); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), reportFilename(calc, "xlsx"), nil
}

func headerCells() []interface{} {
	cells := make([]interface{}, 0, len(reportHeader))
	for _, h := range reportHeader {
		cells = append(cells, h)
	}
	return cells
}

func writeSheetRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to build cell coordinate: %w", err)
	}
	if err := f.SetSheetRow(salarySheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write sheet row: %w", err)
	}
	return nil
}
