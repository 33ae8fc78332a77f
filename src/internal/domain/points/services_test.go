package points_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// Mock Repositories
// ===========================

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(tx shared.TransactionContext, account *points.Account) error {
	return m.Called(tx, account).Error(0)
}

func (m *MockAccountRepository) FindByUserID(tx shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	args := m.Called(tx, userID)
	account, _ := args.Get(0).(*points.Account)
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindByUserIDForUpdate(tx shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	args := m.Called(tx, userID)
	account, _ := args.Get(0).(*points.Account)
	return account, args.Error(1)
}

func (m *MockAccountRepository) Update(tx shared.TransactionContext, account *points.Account) error {
	return m.Called(tx, account).Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(tx shared.TransactionContext, entry *points.LedgerEntry) error {
	return m.Called(tx, entry).Error(0)
}

func (m *MockLedgerRepository) FindByUser(tx shared.TransactionContext, userID points.UserID, limit int) ([]*points.LedgerEntry, error) {
	args := m.Called(tx, userID, limit)
	entries, _ := args.Get(0).([]*points.LedgerEntry)
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) FindByUserAndTypeSince(tx shared.TransactionContext, userID points.UserID, entryType points.EntryType, since time.Time) ([]*points.LedgerEntry, error) {
	args := m.Called(tx, userID, entryType, since)
	entries, _ := args.Get(0).([]*points.LedgerEntry)
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SumByUser(tx shared.TransactionContext, userID points.UserID) (int, error) {
	args := m.Called(tx, userID)
	return args.Int(0), args.Error(1)
}

// ===========================
// LedgerPostingService 測試
// ===========================

func TestLedgerPostingService_Post_UpdatesBalanceThenAppends(t *testing.T) {
	// Arrange
	accounts := new(MockAccountRepository)
	ledger := new(MockLedgerRepository)
	service := points.NewLedgerPostingService(accounts, ledger)

	userID := points.NewUserID()
	account := points.ReconstructAccount(userID, 10, openedAt, openedAt)
	entry := mustEntry(t, userID, 15, points.EntryDailyCheckin)

	accounts.On("Update", nil, account).Return(nil).Once()
	ledger.On("Append", nil, entry).Return(nil).Once()

	// Act
	err := service.Post(nil, account, entry)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 25, account.Balance())
	accounts.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestLedgerPostingService_Post_UpdateFails_SkipsAppend(t *testing.T) {
	// Arrange
	accounts := new(MockAccountRepository)
	ledger := new(MockLedgerRepository)
	service := points.NewLedgerPostingService(accounts, ledger)

	userID := points.NewUserID()
	account := points.ReconstructAccount(userID, 0, openedAt, openedAt)
	dbErr := errors.New("connection reset")
	accounts.On("Update", nil, account).Return(dbErr).Once()

	// Act
	err := service.Post(nil, account, mustEntry(t, userID, 5, points.EntryManual))

	// Assert
	assert.ErrorIs(t, err, dbErr)
	ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLedgerPostingService_Post_MismatchedEntry_NoWrites(t *testing.T) {
	// Arrange
	accounts := new(MockAccountRepository)
	ledger := new(MockLedgerRepository)
	service := points.NewLedgerPostingService(accounts, ledger)

	account := points.ReconstructAccount(points.NewUserID(), 0, openedAt, openedAt)

	// Act
	err := service.Post(nil, account, mustEntry(t, points.NewUserID(), 5, points.EntryManual))

	// Assert
	assert.ErrorIs(t, err, points.ErrAccountMismatch)
	accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// ===========================
// BalanceReconciliationService 測試
// ===========================

func TestBalanceReconciliationService_Reconcile(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		ledgerSum int
		diverged  bool
	}{
		{"一致", 40, 40, false},
		{"一致（零）", 0, 0, false},
		{"餘額偏高", 50, 40, true},
		{"餘額偏低", -5, 10, true},
	}

	service := points.NewBalanceReconciliationService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			account := points.ReconstructAccount(points.NewUserID(), tt.stored, openedAt, openedAt)

			// Act
			d, err := service.Reconcile(account, tt.ledgerSum)

			// Assert
			if !tt.diverged {
				assert.NoError(t, err)
				assert.Nil(t, d)
				return
			}
			assert.ErrorIs(t, err, points.ErrBalanceDiverged)
			require.NotNil(t, d)
			assert.Equal(t, tt.stored-tt.ledgerSum, d.Delta())
		})
	}
}
