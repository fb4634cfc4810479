package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// GetAttendanceReport lists projected records, newest first by default
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// ExportAttendanceReport downloads the same records as xlsx or csv
	ExportAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService, now func() time.Time) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		now:           now,
	}
}

// GetAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.QueryRecords(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(result.Total)})
}

// ExportAttendanceReport handles GET /reports/attendance/export
func (h *reportHandlerImpl) ExportAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		ReportFilter: reportFilterFromQuery(r),
		Format:       report.ExportFormat(r.URL.Query().Get("format")),
	}

	// Buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.reportService.Export(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = report.FormatXLSX
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
