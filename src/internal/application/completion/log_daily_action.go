package completion

import (
	"context"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
)

// DailyActionResult 每日行動結果
type DailyActionResult struct {
	Balance            int // 含每週獎勵後的餘額
	WeeklyBonusAwarded bool
	Streak             int
}

// LogDailyAction 完成每日任務並立即判斷每週獎勵
//
// 每日完成已提交後，每週獎勵或連續天數的讀取失敗只記錄，
// 不讓呼叫端誤以為每日完成失敗而重試。
func (e *Engine) LogDailyAction(ctx context.Context, userIDStr, taskIDStr string) (*DailyActionResult, error) {
	daily, err := e.CompleteDaily(ctx, userIDStr, taskIDStr)
	if err != nil {
		return nil, err
	}
	result := &DailyActionResult{Balance: daily.Balance}

	// CompleteDaily 已驗證過 userID
	userID, _ := points.UserIDFromString(userIDStr)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	awarded, balance, err := e.checkWeeklyBonus(ctx, userID)
	if err != nil {
		e.log.Error("weekly bonus check failed after daily completion", "user_id", userIDStr, "error", err)
	} else if awarded {
		result.WeeklyBonusAwarded = true
		result.Balance = balance
	}

	streak, err := e.progress.StreakWithContext(e.txManager.AutoCommit(ctx), userID, e.clock.Now())
	if err != nil {
		e.log.Error("streak read failed after daily completion", "user_id", userIDStr, "error", err)
	} else {
		result.Streak = streak
	}

	return result, nil
}
