package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Repositories is the full storage surface, backed by one driver.
type Repositories struct {
	Users         user.UserRepository
	Groups        group.GroupRepository
	Memberships   group.MembershipRepository
	RefreshTokens auth.RefreshTokenRepository
	Attendance    attendance.Store
	Close         func()
}

// Open connects the configured driver. For postgres the embedded schema is applied first.
func Open(ctx context.Context, cfg *config.Config, loc *time.Location) (*Repositories, error) {
	switch cfg.Database.Driver {
	case DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		slog.Info("connected to postgres", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return &Repositories{
			Users:         postgresql.NewUserRepository(db),
			Groups:        postgresql.NewGroupRepository(db),
			Memberships:   postgresql.NewMembershipRepository(db),
			RefreshTokens: postgresql.NewRefreshTokenRepository(db),
			Attendance:    postgresql.NewAttendanceRepository(db, loc),
			Close:         db.Close,
		}, nil

	case DriverMemory:
		db := memory.NewDB()
		slog.Warn("using in-memory store; data is lost on restart")
		return &Repositories{
			Users:         memory.NewUserRepository(db),
			Groups:        memory.NewGroupRepository(db),
			Memberships:   memory.NewMembershipRepository(db),
			RefreshTokens: memory.NewRefreshTokenRepository(db),
			Attendance:    memory.NewAttendanceStore(db),
			Close:         func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Database.Driver)
}
