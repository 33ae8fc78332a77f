package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackyeh168/momentum/src/internal/app"
	"github.com/jackyeh168/momentum/src/internal/config"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting ledgerd",
		"db_driver", cfg.DBDriver,
		"timezone", cfg.Location.String(),
		"audit_schedule", cfg.AuditSchedule,
	)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("init failed", "error", err)
	}
	defer a.Close()

	if err := a.Bootstrap(ctx); err != nil {
		log.Error("bootstrap failed", "error", err)
		return
	}
	if err := a.Start(ctx); err != nil {
		log.Error("scheduler failed", "error", err)
		return
	}

	<-ctx.Done()
	log.Info("shutting down")
}
