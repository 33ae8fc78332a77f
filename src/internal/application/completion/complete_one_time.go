package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// OneTimeResult 一次性任務完成結果
type OneTimeResult struct {
	Balance int
}

// CompleteOneTime 完成一次性任務
//
// 已有任何完成標記 → ErrAlreadyCompleted（不論是預先檢查或唯一索引衝突）。
func (e *Engine) CompleteOneTime(ctx context.Context, userIDStr, taskIDStr string) (*OneTimeResult, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	t, err := e.loadTask(ctx, taskIDStr, task.TypeOneTime)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	alreadyCompleted := points.ErrAlreadyCompleted.WithContext(
		"user_id", userID.String(),
		"task_id", t.ID().String(),
	)

	var account *points.Account
	err = e.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		account, err = e.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}

		_, err = e.completions.Find(tx, userID, t.ID())
		if err == nil {
			return alreadyCompleted
		}
		if !errors.Is(err, points.ErrCompletionNotFound) {
			return err
		}

		completion, err := points.NewCompletion(userID, t.ID(), now)
		if err != nil {
			return err
		}
		if err := e.completions.Insert(tx, completion); err != nil {
			return err
		}

		return e.credit(tx, account, t, points.EntryProfileCompletion, now)
	})
	if err != nil {
		if errors.Is(err, points.ErrCompletionExists) {
			err = alreadyCompleted
		}
		return nil, e.logFailure("CompleteOneTime", userID, t, err)
	}

	e.publish(account)
	e.log.Debug("one-time task completed",
		"user_id", userID.String(),
		"task", t.Name(),
		"balance", account.Balance(),
	)
	return &OneTimeResult{Balance: account.Balance()}, nil
}
