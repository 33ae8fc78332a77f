package events_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/events"
	"github.com/jackyeh168/momentum/src/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisher_PublishBatch_LogsAndDispatches(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.InfoLevel)
	publisher := events.NewLogPublisher(logger.FromZap(zap.New(core)))

	var credited []shared.DomainEvent
	publisher.Subscribe("points.credited", func(e shared.DomainEvent) {
		credited = append(credited, e)
	})

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	userID := points.NewUserID()
	account, err := points.NewAccount(userID, now)
	require.NoError(t, err)
	entry, err := points.NewLedgerEntry(userID, 10, points.EntryDailyCheckin, "Completed: x", now)
	require.NoError(t, err)
	require.NoError(t, account.Apply(entry))

	// Act
	err = publisher.PublishBatch(account.PullEvents())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("domain event").Len())
	require.Len(t, credited, 1)
	assert.Equal(t, userID.String(), credited[0].AggregateID())
}
