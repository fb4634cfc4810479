package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// NotAvailable is rendered for missing times and incomplete totals.
const NotAvailable = "N/A"

// TimeLayout is the 12-hour clock used by reports and exports.
const TimeLayout = "03:04 PM"

// Record status as shown in reports
const (
	StatusComplete = "complete"
	StatusActive   = "active"
	StatusPending  = "pending"
)

// ReportFilter selects records by inclusive date range and/or user.
// Empty fields are not filtered on.
type ReportFilter struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	UserID    string `json:"user_id"`
	SortOrder string `json:"sort_order"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var hasStart, hasEnd bool
	if !validator.IsEmpty(f.StartDate) {
		if start, hasStart = validator.IsValidDate(f.StartDate); !hasStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if !validator.IsEmpty(f.EndDate) {
		if end, hasEnd = validator.IsValidDate(f.EndDate); !hasEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if !validator.IsEmpty(f.UserID) && !validator.IsValidUUID(f.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if !validator.IsEmpty(f.SortOrder) && !validator.IsInSlice(f.SortOrder, []string{string(attendance.SortAsc), string(attendance.SortDesc)}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.Err()
}

// ToQuery converts a validated filter to a store query with dates in loc.
// fallback applies when no sort order was requested.
func (f ReportFilter) ToQuery(loc *time.Location, fallback attendance.SortOrder) (attendance.RecordQuery, error) {
	q := attendance.RecordQuery{SortOrder: fallback}
	if f.SortOrder != "" {
		q.SortOrder = attendance.SortOrder(f.SortOrder)
	}
	if f.StartDate != "" {
		d, err := validator.ParseDateIn(f.StartDate, loc)
		if err != nil {
			return q, fmt.Errorf("parse start_date: %w", err)
		}
		q.StartDate = &d
	}
	if f.EndDate != "" {
		d, err := validator.ParseDateIn(f.EndDate, loc)
		if err != nil {
			return q, fmt.Errorf("parse end_date: %w", err)
		}
		q.EndDate = &d
	}
	if f.UserID != "" {
		id := f.UserID
		q.UserID = &id
	}
	return q, nil
}

// RecordProjection is one display row of the attendance report
type RecordProjection struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	User       string `json:"user"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalHours string `json:"total_hours"`
	Status     string `json:"status"`
}

// Row returns the export cells in column order.
func (p RecordProjection) Row() []string {
	return []string{p.User, p.Date, p.CheckIn, p.CheckOut, p.TotalHours}
}

// ExportHeaders is the fixed column order of every export
var ExportHeaders = []string{"User", "Date", "Check In", "Check Out", "Total Hours"}

type ReportResponse struct {
	StartDate *string            `json:"start_date"`
	EndDate   *string            `json:"end_date"`
	SortOrder string             `json:"sort_order"`
	Total     int                `json:"total"`
	Records   []RecordProjection `json:"records"`
}

type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

func (f ExportFormat) Valid() bool {
	return f == FormatXLSX || f == FormatCSV
}

func (f ExportFormat) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName is the download name for an export generated on the local day of now.
func (f ExportFormat) FileName(now time.Time) string {
	return fmt.Sprintf("attendance_report_%s.%s", now.Format("20060102"), f)
}

type ExportRequest struct {
	ReportFilter
	Format ExportFormat `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	var filterErrs validator.ValidationErrors
	if errors.As(r.ReportFilter.Validate(), &filterErrs) {
		errs = append(errs, filterErrs...)
	}
	if r.Format == "" {
		r.Format = FormatXLSX
	} else if !r.Format.Valid() {
		errs.Add("format", "format must be one of: xlsx, csv")
	}

	return errs.Err()
}
