package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository"
	"github.com/cmlabs-hris/attendance-backend-go/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if cfg.Database.Driver == repository.DriverMemory {
		slog.Warn("STORE_DRIVER=memory: the api seeds itself at startup, nothing to do")
		return
	}

	if err := run(cfg); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database seeded", "admin", "admin / admin123", "employee", "employee1 / password123")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := repository.Open(ctx, cfg, cfg.Location())
	if err != nil {
		return err
	}
	defer repos.Close()

	slog.Info("Starting database seed")
	return seed.Run(ctx, repos)
}
