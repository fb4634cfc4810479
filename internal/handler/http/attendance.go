package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Eligibility(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
	loc               *time.Location
	now               func() time.Time
}

// NewAttendanceHandler uses now as the clock; pass time.Now outside tests.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService, loc *time.Location, now func() time.Time) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
		loc:               loc,
		now:               now,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockIn(r.Context(), middleware.UserIDFromContext(r), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch result.Status {
	case attendance.ClockOK:
		response.Created(w, "Clock in successful", result)
	case attendance.ClockAlready:
		// Not an error for the client; the message is a warning.
		response.SuccessWithMessage(w, result.Reason, result)
	case attendance.ClockDenied:
		response.WithCodeAndData(w, http.StatusForbidden, response.CodeDayNotAllowed, result.Reason, result)
	default:
		response.HandleError(w, result.Err)
	}
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockOut(r.Context(), middleware.UserIDFromContext(r), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch result.Status {
	case attendance.ClockOK:
		response.SuccessWithMessage(w, "Clock out successful", result)
	case attendance.ClockAlready:
		response.WithCodeAndData(w, http.StatusConflict, response.CodeAlreadyCheckedOut, result.Reason, result)
	case attendance.ClockNotStarted:
		response.WithCodeAndData(w, http.StatusConflict, response.CodeNotCheckedIn, result.Reason, result)
	case attendance.ClockInvalidOrder:
		response.WithCodeAndData(w, http.StatusUnprocessableEntity, response.CodeInvalidOrder, result.Reason, result)
	default:
		response.HandleError(w, result.Err)
	}
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Status(r.Context(), middleware.UserIDFromContext(r), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Eligibility implements AttendanceHandler. Without ?date= it answers for today.
func (h *attendanceHandlerImpl) Eligibility(w http.ResponseWriter, r *http.Request) {
	req := attendance.EligibilityRequest{Date: r.URL.Query().Get("date")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date := h.now()
	if req.Date != "" {
		parsed, err := validator.ParseDateIn(req.Date, h.loc)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		date = parsed
	}

	result, err := h.attendanceService.CheckEligibility(r.Context(), middleware.UserIDFromContext(r), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler. The user filter is always the caller.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := reportFilterFromQuery(r)
	filter.UserID = middleware.UserIDFromContext(r)

	result, err := h.reportService.QueryRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(result.Total)})
}

func reportFilterFromQuery(r *http.Request) report.ReportFilter {
	q := r.URL.Query()
	return report.ReportFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		UserID:    q.Get("user_id"),
		SortOrder: q.Get("sort_order"),
	}
}
