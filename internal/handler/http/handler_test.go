package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "01900000-0000-7000-8000-000000000001"
	testAdminID = "01900000-0000-7000-8000-000000000002"
)

var (
	wib      = time.FixedZone("WIB", 7*3600)
	fixedNow = time.Date(2024, time.January, 8, 9, 0, 0, 0, wib)
)

type mockAttendanceService struct {
	mock.Mock
}

func (m *mockAttendanceService) ClockIn(ctx context.Context, userID string, now time.Time) (attendance.ClockInResult, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(attendance.ClockInResult), args.Error(1)
}

func (m *mockAttendanceService) ClockOut(ctx context.Context, userID string, now time.Time) (attendance.ClockOutResult, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(attendance.ClockOutResult), args.Error(1)
}

func (m *mockAttendanceService) Status(ctx context.Context, userID string, now time.Time) (attendance.StatusResponse, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(attendance.StatusResponse), args.Error(1)
}

func (m *mockAttendanceService) CheckEligibility(ctx context.Context, userID string, date time.Time) (attendance.EligibilityResponse, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(attendance.EligibilityResponse), args.Error(1)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) QueryRecords(ctx context.Context, filter report.ReportFilter) (report.ReportResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(report.ReportResponse), args.Error(1)
}

func (m *mockReportService) Export(ctx context.Context, req report.ExportRequest, w io.Writer) error {
	args := m.Called(ctx, req, w)
	return args.Error(0)
}

type testServer struct {
	handler    http.Handler
	jwt        jwt.Service
	hub        *sse.Hub
	attendance *mockAttendanceService
	report     *mockReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	require.NoError(t, err)

	s := &testServer{
		jwt:        jwtService,
		hub:        sse.NewHub(),
		attendance: &mockAttendanceService{},
		report:     &mockReportService{},
	}
	now := func() time.Time { return fixedNow }

	handlers := Handlers{
		Auth:       NewAuthHandler(jwtService, nil),
		Attendance: NewAttendanceHandler(s.attendance, s.report, wib, now),
		Report:     NewReportHandler(s.report, now),
		Group:      NewGroupHandler(nil),
		User:       NewUserHandler(nil, nil),
		Dashboard:  NewDashboardHandler(nil, jwtService, s.hub, now),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = NewRouter(jwtService, handlers, logger, []string{"http://localhost:3000"})
	return s
}

func (s *testServer) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(userID, "someone", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, target, token string, body io.Reader) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func errorCode(resp map[string]interface{}) string {
	errObj, ok := resp["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
