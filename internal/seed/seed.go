package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/group"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
)

type seedUser struct {
	username string
	password string
	fullName string
	email    string
	role     user.Role
}

type seedGroup struct {
	name string
	days []calendar.Weekday
}

var (
	adminUser    = seedUser{"admin", "admin123", "Admin User", "admin@sga-lite.com", user.RoleAdmin}
	employeeUser = seedUser{"employee1", "password123", "John Doe", "employee1@sga-lite.com", user.RoleEmployee}

	weekdayShift = seedGroup{"Weekday Shift", []calendar.Weekday{calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday, calendar.Friday}}
	weekendShift = seedGroup{"Weekend Shift", []calendar.Weekday{calendar.Saturday, calendar.Sunday}}
	fullTime     = seedGroup{"Full Time", []calendar.Weekday{calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday, calendar.Friday, calendar.Saturday, calendar.Sunday}}
)

// Run creates the demo accounts and groups. Existing rows are left untouched, so it is safe to repeat.
func Run(ctx context.Context, repos *repository.Repositories) error {
	if _, err := ensureUser(ctx, repos.Users, adminUser); err != nil {
		return err
	}
	employee, err := ensureUser(ctx, repos.Users, employeeUser)
	if err != nil {
		return err
	}

	var weekday group.PermissionGroup
	for _, g := range []seedGroup{weekdayShift, weekendShift, fullTime} {
		created, err := ensureGroup(ctx, repos.Groups, g)
		if err != nil {
			return err
		}
		if g.name == weekdayShift.name {
			weekday = created
		}
	}

	_, err = repos.Memberships.Add(ctx, group.Membership{UserID: employee.ID, GroupID: weekday.ID})
	switch {
	case err == nil:
		slog.Info("assigned user to group", "username", employee.Username, "group", weekday.Name)
	case errors.Is(err, group.ErrMembershipExists):
		slog.Info("membership already exists", "username", employee.Username, "group", weekday.Name)
	default:
		return fmt.Errorf("failed to assign %s to %s: %w", employee.Username, weekday.Name, err)
	}

	return nil
}

func ensureUser(ctx context.Context, users user.UserRepository, su seedUser) (user.User, error) {
	existing, err := users.GetByUsername(ctx, su.username)
	if err == nil {
		slog.Info("user already exists", "username", su.username)
		return existing, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to look up %s: %w", su.username, err)
	}

	hash, err := userService.HashPassword(su.password)
	if err != nil {
		return user.User{}, err
	}
	fullName, email := su.fullName, su.email
	created, err := users.Create(ctx, user.User{
		Username:     su.username,
		FullName:     &fullName,
		Email:        &email,
		PasswordHash: &hash,
		Role:         su.role,
		IsActive:     true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create %s: %w", su.username, err)
	}
	slog.Info("created user", "username", su.username, "role", su.role)
	return created, nil
}

func ensureGroup(ctx context.Context, groups group.GroupRepository, sg seedGroup) (group.PermissionGroup, error) {
	created, err := groups.Create(ctx, group.PermissionGroup{
		Name:            sg.name,
		AllowedWeekdays: calendar.NewWeekdaySet(sg.days...),
	})
	if err == nil {
		slog.Info("created group", "name", sg.name, "allowed_days", created.AllowedWeekdays.String())
		return created, nil
	}
	if !errors.Is(err, group.ErrDuplicateName) {
		return group.PermissionGroup{}, fmt.Errorf("failed to create group %s: %w", sg.name, err)
	}

	all, err := groups.List(ctx)
	if err != nil {
		return group.PermissionGroup{}, fmt.Errorf("failed to list groups: %w", err)
	}
	for _, g := range all {
		if g.Name == sg.name {
			slog.Info("group already exists", "name", sg.name)
			return g, nil
		}
	}
	return group.PermissionGroup{}, fmt.Errorf("group %s reported as duplicate but not found", sg.name)
}
