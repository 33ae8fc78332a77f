package points

import (
	"context"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// LeaderboardQuery 排行榜查詢
type LeaderboardQuery struct {
	Limit         int    // <= 0 使用預設值
	CurrentUserID string // 可為空
}

// RankEntry 排行榜項目
type RankEntry struct {
	Rank    int
	UserID  string
	Balance int
}

// LeaderboardResult 排行榜結果
//
// UserEntry 只在目前使用者不在前 Limit 名時提供。
type LeaderboardResult struct {
	Entries   []RankEntry
	UserEntry *RankEntry
	UserRank  *int
}

// LeaderboardUseCase 排行榜 Use Case
//
// 名次 = 餘額嚴格大於自己的帳戶數 + 1（同分同名次）。
type LeaderboardUseCase struct {
	accountRepo points.AccountQueryRepository
	txManager   shared.TransactionManager
}

// NewLeaderboardUseCase 創建 Use Case 實例
func NewLeaderboardUseCase(accountRepo points.AccountQueryRepository, txManager shared.TransactionManager) *LeaderboardUseCase {
	return &LeaderboardUseCase{accountRepo: accountRepo, txManager: txManager}
}

// Execute 查詢排行榜
func (uc *LeaderboardUseCase) Execute(ctx context.Context, query LeaderboardQuery) (*LeaderboardResult, error) {
	limit := query.Limit
	switch {
	case limit <= 0:
		limit = DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		limit = MaxLeaderboardLimit
	}

	var currentUser points.UserID
	if query.CurrentUserID != "" {
		id, err := points.UserIDFromString(query.CurrentUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse user ID: %w", err)
		}
		currentUser = id
	}

	tx := uc.txManager.AutoCommit(ctx)
	top, err := uc.accountRepo.FindTopByBalance(tx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	result := &LeaderboardResult{Entries: make([]RankEntry, 0, len(top))}
	inTop := false
	for _, a := range top {
		above, err := uc.accountRepo.CountWithBalanceAbove(tx, a.Balance())
		if err != nil {
			return nil, fmt.Errorf("failed to rank account: %w", err)
		}
		result.Entries = append(result.Entries, RankEntry{
			Rank:    int(above) + 1,
			UserID:  a.UserID().String(),
			Balance: a.Balance(),
		})
		if a.UserID().Equals(currentUser) {
			inTop = true
			rank := int(above) + 1
			result.UserRank = &rank
		}
	}

	if currentUser.IsEmpty() || inTop {
		return result, nil
	}

	entry, err := uc.rankOf(tx, currentUser)
	if err != nil {
		return nil, err
	}
	result.UserEntry = entry
	result.UserRank = &entry.Rank
	return result, nil
}

// IsTopPercentile 使用者是否位於前 pct%
//
// 門檻 = ceil(總帳戶數 × pct / 100)；沒有帳戶時返回 false。
func (uc *LeaderboardUseCase) IsTopPercentile(ctx context.Context, userIDStr string, pct int) (bool, error) {
	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return false, fmt.Errorf("failed to parse user ID: %w", err)
	}
	if pct <= 0 {
		return false, nil
	}

	tx := uc.txManager.AutoCommit(ctx)
	total, err := uc.accountRepo.Count(tx)
	if err != nil {
		return false, fmt.Errorf("failed to count accounts: %w", err)
	}
	if total == 0 {
		return false, nil
	}

	entry, err := uc.rankOf(tx, userID)
	if err != nil {
		return false, err
	}

	threshold := decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		Ceil().
		IntPart()

	return int64(entry.Rank) <= threshold, nil
}

func (uc *LeaderboardUseCase) rankOf(tx shared.TransactionContext, userID points.UserID) (*RankEntry, error) {
	account, err := uc.accountRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	above, err := uc.accountRepo.CountWithBalanceAbove(tx, account.Balance())
	if err != nil {
		return nil, fmt.Errorf("failed to rank account: %w", err)
	}
	return &RankEntry{
		Rank:    int(above) + 1,
		UserID:  userID.String(),
		Balance: account.Balance(),
	}, nil
}
