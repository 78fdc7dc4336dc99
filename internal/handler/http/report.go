package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/hadirin/attendance-backend-go/internal/handler/http/response"
	"github.com/hadirin/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	SalaryCSV(w http.ResponseWriter, r *http.Request)
	SalaryXLSX(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func decodeCalculateRequest(w http.ResponseWriter, r *http.Request) (salary.CalculateRequest, bool) {
	var calcReq salary.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&calcReq); err != nil {
		slog.Error("Report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return salary.CalculateRequest{}, false
	}
	return calcReq, true
}

func writeAttachment(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write report body", "filename", filename, "error", err)
	}
}

// SalaryCSV implements ReportHandler.
func (h *ReportHandlerImpl) SalaryCSV(w http.ResponseWriter, r *http.Request) {
	calcReq, ok := decodeCalculateRequest(w, r)
	if !ok {
		return
	}

	data, filename, err := h.reportService.SalaryCSV(r.Context(), calcReq)
	if err != nil {
		slog.Error("SalaryCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeAttachment(w, data, filename, "text/csv")
}

// SalaryXLSX implements ReportHandler.
func (h *ReportHandlerImpl) SalaryXLSX(w http.ResponseWriter, r *http.Request) {
	calcReq, ok := decodeCalculateRequest(w, r)
	if !ok {
		return
	}

	data, filename, err := h.reportService.SalaryXLSX(r.Context(), calcReq)
	if err != nil {
		slog.Error("SalaryXLSX service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeAttachment(w, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}
