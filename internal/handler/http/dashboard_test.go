package http

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSSEToken_AdminOnly(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/dashboard/sse-token", s.token(t, testUserID, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/v1/dashboard/sse-token", s.token(t, testAdminID, user.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	userID, err := s.jwt.ValidateSSEToken(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, testAdminID, userID)
}

func TestStream_RejectsMissingOrWrongToken(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/dashboard/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An access token is not an SSE token.
	w, _ = s.do(t, http.MethodGet, "/api/v1/dashboard/stream?token="+s.token(t, testAdminID, user.RoleAdmin), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStream_DeliversClockEvents(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.handler)
	defer server.Close()

	token, _, err := s.jwt.GenerateSSEToken(testAdminID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/dashboard/stream?token="+token, nil)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var name, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case line == "":
				return name, data
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			}
		}
	}

	name, _ := readEvent()
	require.Equal(t, "connected", name)
	assert.Equal(t, 1, s.hub.SubscriberCount(sse.TopicAttendance))

	s.hub.Publish(sse.TopicAttendance, sse.Event{
		Event: dashboard.EventClockIn,
		Data:  dashboard.ClockEvent{UserID: testUserID, Username: "employee1", DisplayName: "John Doe", Date: "2024-01-08"},
	})

	name, data := readEvent()
	assert.Equal(t, dashboard.EventClockIn, name)
	assert.Contains(t, data, `"username":"employee1"`)
}
