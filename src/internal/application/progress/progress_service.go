package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

// DefaultStreakLookbackDays 連續天數最多往回讀取的天數
const DefaultStreakLookbackDays = 365

// Options 進度計算參數
type Options struct {
	StreakLookbackDays int // <= 0 使用 DefaultStreakLookbackDays
	WeeklyTarget       int // <= 0 使用 progress.DefaultWeeklyTarget
}

// Service 連續天數與每週進度（唯讀，資料來源為帳本的 daily_checkin 記錄）
type Service struct {
	ledgerRepo points.LedgerRepository
	txManager  shared.TransactionManager
	calendar   progress.Calendar
	clock      shared.Clock
	lookback   int
	target     int
}

// NewService 創建進度服務
func NewService(
	ledgerRepo points.LedgerRepository,
	txManager shared.TransactionManager,
	calendar progress.Calendar,
	clock shared.Clock,
	opts Options,
) *Service {
	if opts.StreakLookbackDays <= 0 {
		opts.StreakLookbackDays = DefaultStreakLookbackDays
	}
	if opts.WeeklyTarget <= 0 {
		opts.WeeklyTarget = progress.DefaultWeeklyTarget
	}
	return &Service{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		calendar:   calendar,
		clock:      clock,
		lookback:   opts.StreakLookbackDays,
		target:     opts.WeeklyTarget,
	}
}

// Calendar 使用中的日曆
func (s *Service) Calendar() progress.Calendar {
	return s.calendar
}

// GetDailyStreak 目前的連續打卡天數（沒有記錄時為 0）
func (s *Service) GetDailyStreak(ctx context.Context, userIDStr string) (int, error) {
	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user ID: %w", err)
	}
	return s.StreakWithContext(s.txManager.AutoCommit(ctx), userID, s.clock.Now())
}

// GetWeeklyProgress 本週（週一起）有打卡的天數與目標
func (s *Service) GetWeeklyProgress(ctx context.Context, userIDStr string) (progress.WeeklyProgress, error) {
	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return progress.WeeklyProgress{}, fmt.Errorf("failed to parse user ID: %w", err)
	}
	return s.WeeklyWithContext(s.txManager.AutoCommit(ctx), userID, s.clock.Now())
}

// StreakWithContext 在指定事務上下文中計算連續天數
func (s *Service) StreakWithContext(tx shared.TransactionContext, userID points.UserID, now time.Time) (int, error) {
	today := s.calendar.DayOf(now)
	since := s.calendar.StartOf(today.AddDays(-s.lookback))

	days, err := s.checkinDays(tx, userID, since)
	if err != nil {
		return 0, err
	}
	return progress.Streak(days, today, s.lookback), nil
}

// WeeklyWithContext 在指定事務上下文中計算本週進度
//
// 每週獎勵判斷在鎖定帳戶後呼叫，讀到的是同一事務中的資料。
func (s *Service) WeeklyWithContext(tx shared.TransactionContext, userID points.UserID, now time.Time) (progress.WeeklyProgress, error) {
	weekStart := s.calendar.WeekStart(now)

	days, err := s.checkinDays(tx, userID, s.calendar.StartOf(weekStart))
	if err != nil {
		return progress.WeeklyProgress{}, err
	}
	return progress.Weekly(days, weekStart, s.target), nil
}

func (s *Service) checkinDays(tx shared.TransactionContext, userID points.UserID, since time.Time) (progress.DaySet, error) {
	entries, err := s.ledgerRepo.FindByUserAndTypeSince(tx, userID, points.EntryDailyCheckin, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	times := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		times = append(times, e.CreatedAt())
	}
	return progress.NewDaySet(s.calendar, times), nil
}
