package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hadirin/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirin/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. The scanner posts the employee code
// decoded from the QR image.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkReq attendance.CheckRequest

	if err := json.NewDecoder(r.Body).Decode(&checkReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	event, err := h.attendanceService.CheckIn(r.Context(), checkReq)
	if err != nil {
		slog.Error("CheckIn service error", "employee_code", checkReq.EmployeeCode, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", event)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkReq attendance.CheckRequest

	if err := json.NewDecoder(r.Body).Decode(&checkReq); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	event, err := h.attendanceService.CheckOut(r.Context(), checkReq)
	if err != nil {
		slog.Error("CheckOut service error", "employee_code", checkReq.EmployeeCode, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked out", event)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := eventFilterFromQuery(r)
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	h.listEvents(w, r, filter)
}

// ListByEmployee implements AttendanceHandler. The employee ID comes from the
// URL path instead of a query parameter.
func (h *AttendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	filter := eventFilterFromQuery(r)
	filter.EmployeeID = &employeeID

	h.listEvents(w, r, filter)
}

func eventFilterFromQuery(r *http.Request) attendance.EventFilter {
	filter := attendance.EventFilter{Page: 1, Limit: 20}

	if eventType := r.URL.Query().Get("type"); eventType != "" {
		filter.Type = &eventType
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	return filter
}

func (h *AttendanceHandlerImpl) listEvents(w http.ResponseWriter, r *http.Request, filter attendance.EventFilter) {
	list, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := int((list.TotalCount + int64(list.Limit) - 1) / int64(list.Limit))
	response.SuccessWithMeta(w, list.Data, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: totalPages,
	})
}
