package points

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// OpenAccount Use Case 測試
// ===========================

var fixedNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func newOpenAccountUseCase(repo *MockAccountRepository, txm *MockTransactionManager, pub *recordingPublisher) *OpenAccountUseCase {
	return NewOpenAccountUseCase(repo, txm, pub, shared.ClockFunc(func() time.Time { return fixedNow }), logger.NewNop())
}

// Test 1: 成功開立積分帳戶
func TestOpenAccountUseCase_Success(t *testing.T) {
	// Arrange
	mockRepo := NewMockAccountRepository()
	mockTxManager := NewMockTransactionManager()
	pub := &recordingPublisher{}
	useCase := newOpenAccountUseCase(mockRepo, mockTxManager, pub)

	userID := points.NewUserID()

	// Act
	result, err := useCase.Execute(context.Background(), OpenAccountCommand{UserID: userID.String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, userID.String(), result.UserID)
	assert.Equal(t, 0, result.Balance)
	assert.Equal(t, fixedNow, result.CreatedAt)

	assert.Equal(t, 1, mockRepo.SaveCallCount)
	assert.Equal(t, 1, mockTxManager.InTransactionCallCount)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "points.account_opened", pub.events[0].EventType())
}

// Test 2: 已有帳戶，返回 ErrAccountAlreadyExists
func TestOpenAccountUseCase_AlreadyExists(t *testing.T) {
	mockRepo := NewMockAccountRepository()
	mockTxManager := NewMockTransactionManager()
	pub := &recordingPublisher{}
	useCase := newOpenAccountUseCase(mockRepo, mockTxManager, pub)

	userID := points.NewUserID()
	mockRepo.accounts[userID.String()] = points.ReconstructAccount(userID, 40, fixedNow, fixedNow)

	result, err := useCase.Execute(context.Background(), OpenAccountCommand{UserID: userID.String()})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, points.ErrAccountAlreadyExists), "error should wrap ErrAccountAlreadyExists")
	assert.Equal(t, 40, mockRepo.accounts[userID.String()].Balance(), "existing balance must be untouched")
	assert.Empty(t, pub.events)
}

// Test 3: 無效的 UserID
func TestOpenAccountUseCase_InvalidUserID(t *testing.T) {
	tests := []string{"", "not-a-uuid", "00000000-0000-0000-0000-000000000000"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			mockRepo := NewMockAccountRepository()
			useCase := newOpenAccountUseCase(mockRepo, NewMockTransactionManager(), &recordingPublisher{})

			result, err := useCase.Execute(context.Background(), OpenAccountCommand{UserID: input})

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, points.ErrInvalidUserID))
			assert.Equal(t, 0, mockRepo.SaveCallCount)
		})
	}
}

// Test 4: 加入呼叫端事務，不發布事件
func TestOpenAccountUseCase_ExecuteWithContext(t *testing.T) {
	mockRepo := NewMockAccountRepository()
	mockTxManager := NewMockTransactionManager()
	pub := &recordingPublisher{}
	useCase := newOpenAccountUseCase(mockRepo, mockTxManager, pub)

	userID := points.NewUserID()
	result, err := useCase.ExecuteWithContext(nil, OpenAccountCommand{UserID: userID.String()})

	require.NoError(t, err)
	assert.Equal(t, userID.String(), result.UserID)
	assert.Equal(t, 0, mockTxManager.InTransactionCallCount)
	assert.Empty(t, pub.events)
}

// ===========================
// Mock Repository
// ===========================

type MockAccountRepository struct {
	accounts      map[string]*points.Account
	SaveCallCount int
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*points.Account),
	}
}

func (m *MockAccountRepository) Save(_ shared.TransactionContext, account *points.Account) error {
	m.SaveCallCount++
	key := account.UserID().String()
	if _, exists := m.accounts[key]; exists {
		return points.ErrAccountAlreadyExists
	}
	m.accounts[key] = account
	return nil
}

func (m *MockAccountRepository) FindByUserID(_ shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	account, ok := m.accounts[userID.String()]
	if !ok {
		return nil, points.ErrAccountNotFound
	}
	return account, nil
}

func (m *MockAccountRepository) FindByUserIDForUpdate(tx shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	return m.FindByUserID(tx, userID)
}

func (m *MockAccountRepository) Update(_ shared.TransactionContext, account *points.Account) error {
	if _, ok := m.accounts[account.UserID().String()]; !ok {
		return points.ErrAccountNotFound
	}
	m.accounts[account.UserID().String()] = account
	return nil
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	return fn(mockTxContext{ctx: ctx})
}

func (m *MockTransactionManager) AutoCommit(ctx context.Context) shared.TransactionContext {
	return mockTxContext{ctx: ctx}
}

type mockTxContext struct {
	ctx context.Context
}

func (c mockTxContext) Context() context.Context {
	return c.ctx
}

// ===========================
// Recording Publisher
// ===========================

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(event shared.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
