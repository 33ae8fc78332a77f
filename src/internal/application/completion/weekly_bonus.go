package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// errWeeklyRaced 併發的每週獎勵插入；用來回滾事務，對外視為未發放
var errWeeklyRaced = errors.New("weekly bonus awarded concurrently")

// CheckWeeklyBonus 本週打卡天數達門檻時發放每週獎勵
//
// 返回 false 的情況：
// - 每週獎勵任務不存在、已停用或類型不是 weekly
// - 本週已發放（完成標記日期不早於本週一）
// - 本週不同打卡天數 < 門檻
//
// 可在任何讀取路徑上呼叫；每週一自動重新開放。
func (e *Engine) CheckWeeklyBonus(ctx context.Context, userIDStr string) (bool, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return false, fmt.Errorf("failed to parse user ID: %w", err)
	}
	awarded, _, err := e.checkWeeklyBonus(ctx, userID)
	return awarded, err
}

// checkWeeklyBonus 返回是否發放以及發放後的餘額
func (e *Engine) checkWeeklyBonus(ctx context.Context, userID points.UserID) (bool, int, error) {
	t, err := e.tasks.FindByName(e.txManager.AutoCommit(ctx), e.opts.WeeklyBonusTask)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	if t.EnsureCompletable(task.TypeWeekly) != nil {
		return false, 0, nil
	}

	now := e.clock.Now()
	cal := e.calendar()
	weekStart := cal.StartOf(cal.WeekStart(now))

	var account *points.Account
	awarded := false
	err = e.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		account, err = e.accounts.FindByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}

		existing, err := e.completions.Find(tx, userID, t.ID())
		switch {
		case err == nil:
			if existing.CompletedSince(weekStart) {
				return nil
			}
		case !errors.Is(err, points.ErrCompletionNotFound):
			return err
		}

		weekly, err := e.progress.WeeklyWithContext(tx, userID, now)
		if err != nil {
			return err
		}
		if !weekly.Reached(e.opts.WeeklyThreshold) {
			return nil
		}

		// 上週（或更早）的標記已過期
		if err := e.completions.Delete(tx, userID, t.ID()); err != nil {
			return err
		}
		completion, err := points.NewCompletion(userID, t.ID(), now)
		if err != nil {
			return err
		}
		if err := e.completions.Insert(tx, completion); err != nil {
			if errors.Is(err, points.ErrCompletionExists) {
				return errWeeklyRaced
			}
			return err
		}
		if err := e.credit(tx, account, t, points.EntryWeeklyChallenge, now); err != nil {
			return err
		}
		awarded = true
		return nil
	})
	if errors.Is(err, errWeeklyRaced) {
		e.log.Info("weekly bonus raced", "user_id", userID.String())
		return false, 0, nil
	}
	if err != nil {
		return false, 0, e.logFailure("CheckWeeklyBonus", userID, t, err)
	}
	if !awarded {
		return false, account.Balance(), nil
	}

	e.publish(account)
	e.log.Debug("weekly bonus awarded",
		"user_id", userID.String(),
		"points", t.Points(),
		"balance", account.Balance(),
	)
	return true, account.Balance(), nil
}
