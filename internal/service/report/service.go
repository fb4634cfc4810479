package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/spreadsheet"
)

const sheetName = "Attendance Report"

var columnWidths = []float64{25, 15, 15, 15, 15}

type ReportServiceImpl struct {
	store attendance.Store
	loc   *time.Location
}

func NewReportService(store attendance.Store, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		store: store,
		loc:   loc,
	}
}

func (s *ReportServiceImpl) records(ctx context.Context, filter report.ReportFilter, fallback attendance.SortOrder) ([]report.RecordProjection, attendance.RecordQuery, error) {
	q, err := filter.ToQuery(s.loc, fallback)
	if err != nil {
		return nil, q, err
	}

	records, err := s.store.List(ctx, q)
	if err != nil {
		return nil, q, fmt.Errorf("failed to list attendance records: %w", err)
	}

	projections := make([]report.RecordProjection, 0, len(records))
	for _, rec := range records {
		projections = append(projections, report.Project(rec, s.loc))
	}
	return projections, q, nil
}

// QueryRecords implements report.ReportService.
func (s *ReportServiceImpl) QueryRecords(ctx context.Context, filter report.ReportFilter) (report.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	projections, q, err := s.records(ctx, filter, attendance.SortDesc)
	if err != nil {
		return report.ReportResponse{}, err
	}

	resp := report.ReportResponse{
		SortOrder: string(q.SortOrder),
		Total:     len(projections),
		Records:   projections,
	}
	if filter.StartDate != "" {
		resp.StartDate = &filter.StartDate
	}
	if filter.EndDate != "" {
		resp.EndDate = &filter.EndDate
	}
	return resp, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest, w io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	projections, _, err := s.records(ctx, req.ReportFilter, attendance.SortAsc)
	if err != nil {
		return err
	}

	table := spreadsheet.Table{
		Sheet:   sheetName,
		Headers: report.ExportHeaders,
		Widths:  columnWidths,
		Rows:    make([][]string, 0, len(projections)),
	}
	for _, p := range projections {
		table.Rows = append(table.Rows, p.Row())
	}

	switch req.Format {
	case report.FormatXLSX:
		return spreadsheet.WriteXLSX(w, table)
	case report.FormatCSV:
		return spreadsheet.WriteCSV(w, table)
	default:
		return report.ErrUnsupportedFormat
	}
}
