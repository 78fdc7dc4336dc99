package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hadirin/attendance-backend-go/internal/domain/salary"
	"github.com/hadirin/attendance-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{salaryService: salaryService}
}

// GetConfig implements SalaryHandler. Returns defaults until an admin has
// saved a configuration.
func (h *SalaryHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.salaryService.GetConfig(r.Context())
	if err != nil {
		slog.Error("GetConfig service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

// UpdateConfig implements SalaryHandler. Only the fields present in the body
// are changed.
func (h *SalaryHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var updateReq salary.UpdateConfigRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.salaryService.UpdateConfig(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateConfig service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary configuration updated", cfg)
}

// Calculate implements SalaryHandler. Results are computed on the fly and
// never persisted, so re-running a period is always safe.
func (h *SalaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var calcReq salary.CalculateRequest

	if err := json.NewDecoder(r.Body).Decode(&calcReq); err != nil {
		slog.Error("Calculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salaryService.Calculate(r.Context(), calcReq)
	if err != nil {
		slog.Error("Calculate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
