package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/app"
	apppoints "github.com/jackyeh168/momentum/src/internal/application/points"
	"github.com/jackyeh168/momentum/src/internal/config"
	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DBDriver:           "sqlite",
		DBDSN:              ":memory:",
		DBLogLevel:         "silent",
		Location:           time.UTC,
		StreakLookbackDays: 365,
		WeeklyThreshold:    5,
		WeeklyTarget:       7,
		WeeklyBonusTask:    "Weekly momentum bonus",
		ReferralTask:       "Invite someone to Corovel",
		AuditSchedule:      "@hourly",
		AuditConcurrency:   2,
		OperationTimeout:   5 * time.Second,
	}
}

func TestApp_EndToEnd(t *testing.T) {
	// Arrange
	a, err := app.New(testConfig(), logger.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	var credited []shared.DomainEvent
	a.Publisher.Subscribe("points.credited", func(e shared.DomainEvent) {
		credited = append(credited, e)
	})

	require.NoError(t, a.Bootstrap(ctx))
	require.NoError(t, a.Start(ctx))
	defer a.Close()

	userID := points.NewUserID().String()
	_, err = a.Services.OpenAccount.Execute(ctx, apppoints.OpenAccountCommand{UserID: userID})
	require.NoError(t, err)

	focus, err := a.Services.Catalog.GetByName(ctx, "Define today's primary focus")
	require.NoError(t, err)

	// Act
	result, err := a.Services.Engine.LogDailyAction(ctx, userID, focus.ID().String())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 10, result.Balance)
	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.WeeklyBonusAwarded)
	assert.Len(t, credited, 1)

	statuses, err := a.Services.Engine.ListTaskStatus(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, statuses, 22)

	report := a.Scheduler.RunAudit(ctx)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Diverged)
}

func TestApp_UnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "oracle"

	_, err := app.New(cfg, logger.NewNop())

	assert.Error(t, err)
}
