package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	groupService "github.com/cmlabs-hris/attendance-backend-go/internal/service/group"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAdminServer backs the group and user routes with the in-memory store.
func newAdminServer(t *testing.T) *testServer {
	t.Helper()
	s := newTestServer(t)

	db := memory.NewDB()
	users := memory.NewUserRepository(db)
	memberships := memory.NewMembershipRepository(db)
	groups := groupService.NewGroupService(memory.NewGroupRepository(db), memberships, users)

	handlers := Handlers{
		Auth:       NewAuthHandler(s.jwt, nil),
		Attendance: NewAttendanceHandler(s.attendance, s.report, wib, nil),
		Report:     NewReportHandler(s.report, nil),
		Group:      NewGroupHandler(groups),
		User:       NewUserHandler(userService.NewUserService(users, memberships), groups),
		Dashboard:  NewDashboardHandler(nil, s.jwt, s.hub, nil),
	}
	s.handler = NewRouter(s.jwt, handlers, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	return s
}

func TestGroupLifecycle(t *testing.T) {
	s := newAdminServer(t)
	admin := s.token(t, testAdminID, user.RoleAdmin)

	w, resp := s.do(t, http.MethodPost, "/api/v1/groups", admin, strings.NewReader(`{"name":"Weekday Shift","allowed_weekdays":[0,1,2,3,4]}`))
	require.Equal(t, http.StatusCreated, w.Code)
	groupID := resp["data"].(map[string]interface{})["id"].(string)

	w, resp = s.do(t, http.MethodPost, "/api/v1/groups", admin, strings.NewReader(`{"name":"Weekday Shift","allowed_weekdays":[0]}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(resp))

	w, resp = s.do(t, http.MethodPost, "/api/v1/groups", admin, strings.NewReader(`{"name":"","allowed_weekdays":[]}`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "allowed_weekdays")

	w, resp = s.do(t, http.MethodPost, "/api/v1/users", admin, strings.NewReader(`{"username":"employee1","password":"password123","full_name":"John Doe"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	userID := resp["data"].(map[string]interface{})["id"].(string)

	w, _ = s.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/members/"+userID, admin, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/groups/"+groupID+"/members/"+userID, admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/groups/"+groupID+"/members", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	members := resp["data"].([]interface{})
	require.Len(t, members, 1)
	assert.Equal(t, "John Doe", members[0].(map[string]interface{})["display_name"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/groups/"+groupID, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/groups/"+groupID, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(resp))
}

func TestGroups_EmployeeForbidden(t *testing.T) {
	s := newAdminServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/groups", s.token(t, testUserID, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssignUserGroups(t *testing.T) {
	s := newAdminServer(t)
	admin := s.token(t, testAdminID, user.RoleAdmin)

	_, resp := s.do(t, http.MethodPost, "/api/v1/groups", admin, strings.NewReader(`{"name":"Weekend Shift","allowed_weekdays":[5,6]}`))
	weekend := resp["data"].(map[string]interface{})["id"].(string)
	_, resp = s.do(t, http.MethodPost, "/api/v1/users", admin, strings.NewReader(`{"username":"employee2","password":"password123"}`))
	userID := resp["data"].(map[string]interface{})["id"].(string)

	w, resp := s.do(t, http.MethodPut, "/api/v1/users/"+userID+"/groups", admin, strings.NewReader(`{"group_ids":["`+weekend+`"]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assigned := resp["data"].([]interface{})
	require.Len(t, assigned, 1)
	assert.Equal(t, "Weekend Shift", assigned[0].(map[string]interface{})["name"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/users/"+userID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].(map[string]interface{})["groups"], 1)

	w, _ = s.do(t, http.MethodPatch, "/api/v1/users/"+userID+"/active", admin, strings.NewReader(`{"is_active":false}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/users/not-a-user", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
