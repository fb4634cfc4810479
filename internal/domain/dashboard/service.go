package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetAdminDashboard returns today's overview, querying independent parts concurrently
	GetAdminDashboard(ctx context.Context, now time.Time) (AdminDashboardResponse, error)
}
