package points

import (
	"context"
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

// GetBalanceQuery 查詢積分餘額
type GetBalanceQuery struct {
	UserID string
}

// GetBalanceResult 查詢積分餘額的結果
type GetBalanceResult struct {
	UserID    string
	Balance   int
	UpdatedAt time.Time
}

// GetBalanceUseCase 查詢積分餘額 Use Case
type GetBalanceUseCase struct {
	accountRepo points.AccountRepository
	txManager   shared.TransactionManager
}

// NewGetBalanceUseCase 創建 Use Case 實例
func NewGetBalanceUseCase(repo points.AccountRepository, txManager shared.TransactionManager) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		accountRepo: repo,
		txManager:   txManager,
	}
}

// Execute 查詢餘額（auto-commit）
//
// 錯誤處理：
// - ErrInvalidUserID: UserID 格式無效
// - ErrAccountNotFound: 帳戶不存在
func (uc *GetBalanceUseCase) Execute(ctx context.Context, query GetBalanceQuery) (*GetBalanceResult, error) {
	return uc.ExecuteWithContext(uc.txManager.AutoCommit(ctx), query)
}

// ExecuteWithContext 在事務上下文中查詢
//
// 在已有事務中查詢餘額時傳入呼叫端的 tx，以讀到未提交的變更。
func (uc *GetBalanceUseCase) ExecuteWithContext(
	tx shared.TransactionContext,
	query GetBalanceQuery,
) (*GetBalanceResult, error) {
	userID, err := points.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	account, err := uc.accountRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &GetBalanceResult{
		UserID:    account.UserID().String(),
		Balance:   account.Balance(),
		UpdatedAt: account.UpdatedAt(),
	}, nil
}
