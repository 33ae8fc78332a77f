package points_test

import (
	"math"
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var openedAt = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, userID points.UserID, amount int, entryType points.EntryType) *points.LedgerEntry {
	t.Helper()
	entry, err := points.NewLedgerEntry(userID, amount, entryType, "test", openedAt.Add(time.Minute))
	require.NoError(t, err)
	return entry
}

// ===========================
// Account 建構測試
// ===========================

func TestNewAccount_ValidUserID_StartsAtZero(t *testing.T) {
	// Arrange
	userID := points.NewUserID()

	// Act
	account, err := points.NewAccount(userID, openedAt)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, userID, account.UserID())
	assert.Equal(t, 0, account.Balance())
	assert.Equal(t, openedAt, account.CreatedAt())
}

func TestNewAccount_EmptyUserID_ReturnsError(t *testing.T) {
	// Act
	account, err := points.NewAccount(points.UserID{}, openedAt)

	// Assert
	assert.Nil(t, account)
	assert.ErrorIs(t, err, points.ErrInvalidUserID)
}

func TestNewAccount_PublishesAccountOpenedEvent(t *testing.T) {
	// Arrange
	account, _ := points.NewAccount(points.NewUserID(), openedAt)

	// Act
	events := account.PullEvents()

	// Assert
	require.Len(t, events, 1)
	assert.Equal(t, "points.account_opened", events[0].EventType())
	assert.Equal(t, account.UserID().String(), events[0].AggregateID())
	assert.Empty(t, account.PullEvents(), "PullEvents 之後應清空")
}

func TestReconstructAccount_NoEvents(t *testing.T) {
	// Act
	account := points.ReconstructAccount(points.NewUserID(), 42, openedAt, openedAt)

	// Assert
	assert.Equal(t, 42, account.Balance())
	assert.Empty(t, account.PullEvents())
}

// ===========================
// Apply 測試
// ===========================

func TestAccount_Apply_AccumulatesSignedAmounts(t *testing.T) {
	// Arrange
	userID := points.NewUserID()
	account := points.ReconstructAccount(userID, 0, openedAt, openedAt)

	// Act
	require.NoError(t, account.Apply(mustEntry(t, userID, 10, points.EntryDailyCheckin)))
	require.NoError(t, account.Apply(mustEntry(t, userID, 30, points.EntryWeeklyChallenge)))
	require.NoError(t, account.Apply(mustEntry(t, userID, -15, points.EntryManual)))

	// Assert
	assert.Equal(t, 25, account.Balance())
	assert.Equal(t, openedAt.Add(time.Minute), account.UpdatedAt())
}

func TestAccount_Apply_PublishesCreditedEvent(t *testing.T) {
	// Arrange
	userID := points.NewUserID()
	account := points.ReconstructAccount(userID, 5, openedAt, openedAt)
	entry := mustEntry(t, userID, 12, points.EntryDailyCheckin)

	// Act
	require.NoError(t, account.Apply(entry))
	events := account.PullEvents()

	// Assert
	require.Len(t, events, 1)
	credited, ok := events[0].(*points.PointsCreditedEvent)
	require.True(t, ok)
	assert.Equal(t, "points.credited", credited.EventType())
	assert.Equal(t, 12, credited.Amount())
	assert.Equal(t, 17, credited.Balance())
	assert.Equal(t, entry.ID(), credited.EntryID())
	assert.Equal(t, points.EntryDailyCheckin, credited.EntryType())
}

func TestAccount_Apply_OtherUsersEntry_ReturnsMismatch(t *testing.T) {
	// Arrange
	account := points.ReconstructAccount(points.NewUserID(), 0, openedAt, openedAt)
	entry := mustEntry(t, points.NewUserID(), 10, points.EntryManual)

	// Act
	err := account.Apply(entry)

	// Assert
	assert.ErrorIs(t, err, points.ErrAccountMismatch)
	assert.Equal(t, 0, account.Balance())
}

func TestAccount_Apply_Overflow_ReturnsError(t *testing.T) {
	// Arrange
	userID := points.NewUserID()
	account := points.ReconstructAccount(userID, math.MaxInt-5, openedAt, openedAt)

	// Act
	err := account.Apply(mustEntry(t, userID, 10, points.EntryManual))

	// Assert
	assert.ErrorIs(t, err, points.ErrBalanceOverflow)
	assert.Equal(t, math.MaxInt-5, account.Balance(), "失敗時餘額不變")
}
