package dashboard

// AdminDashboardResponse is today's attendance overview for administrators
type AdminDashboardResponse struct {
	Today            string            `json:"today"`
	ActiveRecords    []DashboardRecord `json:"active_records"`
	CompletedRecords []DashboardRecord `json:"completed_records"`
	TotalEmployees   int64             `json:"total_employees"`
	TotalGroups      int64             `json:"total_groups"`
	ActiveCount      int               `json:"active_count"`
	CompletedCount   int               `json:"completed_count"`
	LiveSubscribers  int               `json:"live_subscribers"`
}

// DashboardRecord is one row of today's active or completed list
type DashboardRecord struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	CheckIn     string  `json:"check_in"`
	CheckOut    *string `json:"check_out,omitempty"`
	TotalHours  *string `json:"total_hours,omitempty"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ClockEvent is the payload streamed on the live feed
type ClockEvent struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Date        string  `json:"date"`
	At          string  `json:"at"`
	TotalHours  *string `json:"total_hours,omitempty"`
}

// Live feed event names
const (
	EventClockIn  = "attendance.clock_in"
	EventClockOut = "attendance.clock_out"
)
