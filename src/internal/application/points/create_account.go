package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// ===========================
// OpenAccount Use Case
// ===========================

// OpenAccountCommand 開立積分帳戶的命令
//
// 驗證：
// - UserID 必須是有效的 UUID 格式
// - UserID 不能已經有積分帳戶
type OpenAccountCommand struct {
	UserID string
}

// OpenAccountResult 開立積分帳戶的結果
type OpenAccountResult struct {
	UserID    string
	Balance   int // 永遠為 0
	CreatedAt time.Time
}

// OpenAccountUseCase 開立積分帳戶 Use Case
//
// 由註冊流程呼叫，每位使用者一次。
//
// 設計原則：
// - 事務管理：Use Case 管理事務（ExecuteWithContext 則加入呼叫端事務）
// - 並發安全：依賴主鍵約束，而非 check-then-insert
type OpenAccountUseCase struct {
	accountRepo points.AccountRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	clock       shared.Clock
	log         *logger.Logger
}

// NewOpenAccountUseCase 創建 Use Case 實例
func NewOpenAccountUseCase(
	repo points.AccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	log *logger.Logger,
) *OpenAccountUseCase {
	return &OpenAccountUseCase{
		accountRepo: repo,
		txManager:   txManager,
		publisher:   publisher,
		clock:       clock,
		log:         log.With("usecase", "OpenAccount"),
	}
}

// Execute 開立帳戶
//
// 錯誤處理：
// - ErrInvalidUserID: UserID 格式無效
// - ErrAccountAlreadyExists: 已有積分帳戶（由資料庫主鍵保證）
func (uc *OpenAccountUseCase) Execute(ctx context.Context, cmd OpenAccountCommand) (*OpenAccountResult, error) {
	var (
		result  *OpenAccountResult
		account *points.Account
	)
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		result, account, err = uc.open(tx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvents(uc.publisher, uc.log, account.PullEvents())
	uc.log.Debug("account opened", "user_id", result.UserID)
	return result, nil
}

// ExecuteWithContext 在已有事務上下文中開立帳戶
//
// 使用場景：註冊流程在自己的事務中同時建立使用者與帳戶。
// 錯誤時不會自動回滾（由調用者的 TransactionManager 處理）；
// 領域事件不發布，由呼叫端負責。
func (uc *OpenAccountUseCase) ExecuteWithContext(
	tx shared.TransactionContext,
	cmd OpenAccountCommand,
) (*OpenAccountResult, error) {
	result, _, err := uc.open(tx, cmd)
	return result, err
}

func (uc *OpenAccountUseCase) open(tx shared.TransactionContext, cmd OpenAccountCommand) (*OpenAccountResult, *points.Account, error) {
	userID, err := points.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	account, err := points.NewAccount(userID, uc.clock.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := uc.accountRepo.Save(tx, account); err != nil {
		if errors.Is(err, points.ErrAccountAlreadyExists) {
			return nil, nil, fmt.Errorf("user already has an account: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to save account: %w", err)
	}

	return &OpenAccountResult{
		UserID:    account.UserID().String(),
		Balance:   account.Balance(),
		CreatedAt: account.CreatedAt(),
	}, account, nil
}

// publishEvents 事務提交後發布事件；失敗只記錄，不影響已提交的結果
func publishEvents(publisher shared.EventPublisher, log *logger.Logger, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil {
		log.Warn("failed to publish domain events", "count", len(events), "error", err)
	}
}
