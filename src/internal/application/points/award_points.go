package points

import (
	"context"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// AwardPointsCommand 通用入帳命令
//
// 用於推薦註冊獎勵、推薦人獎勵與人工調整；
// 任務完成相關的類型必須經由完成流程入帳。
type AwardPointsCommand struct {
	UserID      string
	Amount      int // 有號整數，不可為零
	Type        string
	Description string
}

// AwardPointsResult 入帳結果
type AwardPointsResult struct {
	UserID  string
	EntryID string
	Amount  int
	Balance int
}

// AwardPointsUseCase 通用入帳 Use Case
//
// 與完成流程相同的原子模式：鎖定帳戶列、更新餘額、新增帳本記錄。
type AwardPointsUseCase struct {
	accountRepo points.AccountRepository
	poster      *points.LedgerPostingService
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	clock       shared.Clock
	log         *logger.Logger
}

// NewAwardPointsUseCase 創建 Use Case 實例
func NewAwardPointsUseCase(
	accountRepo points.AccountRepository,
	ledgerRepo points.LedgerRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	log *logger.Logger,
) *AwardPointsUseCase {
	return &AwardPointsUseCase{
		accountRepo: accountRepo,
		poster:      points.NewLedgerPostingService(accountRepo, ledgerRepo),
		txManager:   txManager,
		publisher:   publisher,
		clock:       clock,
		log:         log.With("usecase", "AwardPoints"),
	}
}

// Execute 入帳
//
// 錯誤處理：
// - ErrInvalidUserID / ErrInvalidPointsAmount / ErrInvalidEntryType：驗證失敗，無副作用
// - ErrAccountNotFound：帳戶不存在
func (uc *AwardPointsUseCase) Execute(ctx context.Context, cmd AwardPointsCommand) (*AwardPointsResult, error) {
	userID, err := points.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	entryType, err := points.ParseEntryType(cmd.Type)
	if err != nil {
		return nil, err
	}
	if entryType.IsCompletionOwned() {
		return nil, points.ErrInvalidEntryType.WithContext(
			"type", cmd.Type,
			"reason", "type is written by task completion only",
		)
	}
	entry, err := points.NewLedgerEntry(userID, cmd.Amount, entryType, cmd.Description, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var account *points.Account
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		account, err = uc.accountRepo.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		return uc.poster.Post(tx, account, entry)
	})
	if err != nil {
		uc.log.Info("award rejected", "user_id", cmd.UserID, "type", cmd.Type, "error", err)
		return nil, err
	}

	publishEvents(uc.publisher, uc.log, account.PullEvents())
	uc.log.Debug("points awarded",
		"user_id", userID.String(),
		"amount", entry.Amount(),
		"type", entryType.String(),
		"balance", account.Balance(),
	)

	return &AwardPointsResult{
		UserID:  userID.String(),
		EntryID: entry.ID().String(),
		Amount:  entry.Amount(),
		Balance: account.Balance(),
	}, nil
}
