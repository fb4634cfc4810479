package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) *testServer {
	t.Helper()
	s := newTestServer(t)

	db := memory.NewDB()
	users := memory.NewUserRepository(db)
	hash, err := userService.HashPassword("password123")
	require.NoError(t, err)
	_, err = users.Create(context.Background(), user.User{Username: "employee1", PasswordHash: &hash, Role: user.RoleEmployee, IsActive: true})
	require.NoError(t, err)

	handlers := Handlers{
		Auth:       NewAuthHandler(s.jwt, authService.NewAuthService(users, memory.NewRefreshTokenRepository(db), s.jwt)),
		Attendance: NewAttendanceHandler(s.attendance, s.report, wib, nil),
		Report:     NewReportHandler(s.report, nil),
		Group:      NewGroupHandler(nil),
		User:       NewUserHandler(nil, nil),
		Dashboard:  NewDashboardHandler(nil, s.jwt, s.hub, nil),
	}
	s.handler = NewRouter(s.jwt, handlers, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	return s
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func TestLoginRefreshLogout(t *testing.T) {
	s := newAuthServer(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"username":"employee1","password":"password123"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "employee", data["role"])
	accessToken := data["access_token"].(string)
	cookie := refreshCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// Refresh via JSON body.
	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", strings.NewReader(`{"refresh_token":"`+cookie.Value+`"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, resp["data"].(map[string]interface{})["access_token"])

	// Logout requires an access token and revokes the refresh token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := refreshCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", strings.NewReader(`{"refresh_token":"`+cookie.Value+`"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(resp))
}

func TestLogin_Failures(t *testing.T) {
	s := newAuthServer(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"username":"employee1","password":"nope"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(resp))

	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"username":""}`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(resp))

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
