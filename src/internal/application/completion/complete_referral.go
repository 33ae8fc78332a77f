package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// CompleteReferral 為新使用者與推薦人各寫入一筆推薦任務完成標記
//
// - 推薦任務不存在：不做任何事
// - 已有完成標記（預先檢查或唯一索引衝突）：該使用者略過
// - 不入帳；推薦獎勵由註冊流程透過 AwardPoints 處理
//
// 每位使用者各自一個事務，重試安全。
func (e *Engine) CompleteReferral(ctx context.Context, newUserIDStr, referrerUserIDStr string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	newUserID, err := points.UserIDFromString(newUserIDStr)
	if err != nil {
		return fmt.Errorf("failed to parse user ID: %w", err)
	}
	referrerID, err := points.UserIDFromString(referrerUserIDStr)
	if err != nil {
		return fmt.Errorf("failed to parse referrer ID: %w", err)
	}
	if newUserID.Equals(referrerID) {
		return points.ErrInvalidReferral.WithContext("user_id", newUserID.String())
	}

	t, err := e.tasks.FindByName(e.txManager.AutoCommit(ctx), e.opts.ReferralTask)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			e.log.Warn("referral task missing, skipping", "name", e.opts.ReferralTask)
			return nil
		}
		return err
	}

	now := e.clock.Now()
	for _, userID := range []points.UserID{newUserID, referrerID} {
		if err := e.markReferral(ctx, userID, t, now); err != nil {
			return e.logFailure("CompleteReferral", userID, t, err)
		}
	}

	e.log.Debug("referral recorded",
		"new_user_id", newUserID.String(),
		"referrer_id", referrerID.String(),
	)
	return nil
}

func (e *Engine) markReferral(ctx context.Context, userID points.UserID, t *task.Task, now time.Time) error {
	err := e.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		_, err := e.completions.Find(tx, userID, t.ID())
		if err == nil {
			return nil
		}
		if !errors.Is(err, points.ErrCompletionNotFound) {
			return err
		}
		completion, err := points.NewCompletion(userID, t.ID(), now)
		if err != nil {
			return err
		}
		return e.completions.Insert(tx, completion)
	})
	if errors.Is(err, points.ErrCompletionExists) {
		return nil
	}
	return err
}
