package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// DailyResult 每日任務完成結果
type DailyResult struct {
	Balance int
}

// CompleteDaily 完成每日任務
//
// 流程（單一事務）：
//  1. 鎖定帳戶列
//  2. 既有完成標記落在今天（參考時區）→ ErrAlreadyCompletedToday
//  3. 刪除舊標記、插入新標記
//  4. 入帳 +task.points（daily_checkin）
//
// 併發請求造成的唯一索引衝突同樣返回 ErrAlreadyCompletedToday。
// 完成後的每週獎勵判斷請使用 LogDailyAction 或自行呼叫 CheckWeeklyBonus。
func (e *Engine) CompleteDaily(ctx context.Context, userIDStr, taskIDStr string) (*DailyResult, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	t, err := e.loadTask(ctx, taskIDStr, task.TypeDaily)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	cal := e.calendar()

	var account *points.Account
	err = e.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		// 先鎖帳戶列，同一使用者的完成請求在此串行化
		var err error
		account, err = e.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}

		existing, err := e.completions.Find(tx, userID, t.ID())
		switch {
		case err == nil:
			if cal.SameDay(existing.CompletedAt(), now) {
				return points.ErrAlreadyCompletedToday.WithContext(
					"user_id", userID.String(),
					"task_id", t.ID().String(),
					"day", cal.DayOf(now).String(),
				)
			}
		case !errors.Is(err, points.ErrCompletionNotFound):
			return err
		}

		if err := e.completions.Delete(tx, userID, t.ID()); err != nil {
			return err
		}
		completion, err := points.NewCompletion(userID, t.ID(), now)
		if err != nil {
			return err
		}
		if err := e.completions.Insert(tx, completion); err != nil {
			return err
		}

		return e.credit(tx, account, t, points.EntryDailyCheckin, now)
	})
	if err != nil {
		if errors.Is(err, points.ErrCompletionExists) {
			err = points.ErrAlreadyCompletedToday.WithContext(
				"user_id", userID.String(),
				"task_id", t.ID().String(),
				"day", cal.DayOf(now).String(),
			)
		}
		return nil, e.logFailure("CompleteDaily", userID, t, err)
	}

	e.publish(account)
	e.log.Debug("daily task completed",
		"user_id", userID.String(),
		"task", t.Name(),
		"points", t.Points(),
		"balance", account.Balance(),
	)
	return &DailyResult{Balance: account.Balance()}, nil
}

// logFailure 領域衝突記為 info，其餘（持久化錯誤）記為 error 並包裝
func (e *Engine) logFailure(op string, userID points.UserID, t *task.Task, err error) error {
	var domainErr *points.DomainError
	var taskErr *task.DomainError
	if errors.As(err, &domainErr) || errors.As(err, &taskErr) {
		e.log.Info("completion rejected", "op", op, "user_id", userID.String(), "task", t.Name(), "error", err)
		return err
	}
	e.log.Error("completion failed", "op", op, "user_id", userID.String(), "task", t.Name(), "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
