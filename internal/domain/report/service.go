package report

import (
	"context"
	"io"
)

type ReportService interface {
	// QueryRecords returns the projected records, newest first unless the filter says otherwise
	QueryRecords(ctx context.Context, filter ReportFilter) (ReportResponse, error)

	// Export writes the filtered records, oldest first unless the filter says otherwise
	Export(ctx context.Context, req ExportRequest, w io.Writer) error
}
