// Package completion 任務完成引擎
//
// 每種任務類型有各自的冪等規則：
// - daily：每個參考日一次
// - one_time：永遠一次
// - weekly：由本週打卡天數推導，每週重新開放
// - referral：新使用者與推薦人各一筆完成標記
//
// 所有寫入都在單一事務中完成：鎖定帳戶列、寫完成標記、更新餘額、新增帳本記錄。
package completion

import (
	"context"
	"fmt"
	"time"

	appprogress "github.com/jackyeh168/momentum/src/internal/application/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

const (
	DefaultWeeklyBonusTask = "Weekly momentum bonus"
	DefaultReferralTask    = "Invite someone to Corovel"
	DefaultWeeklyThreshold = 5
)

// Options 引擎參數
type Options struct {
	WeeklyBonusTask  string        // 每週獎勵任務名稱
	ReferralTask     string        // 推薦任務名稱
	WeeklyThreshold  int           // 觸發每週獎勵所需的不同打卡天數
	OperationTimeout time.Duration // 0 表示沿用呼叫端的 deadline
}

func (o Options) withDefaults() Options {
	if o.WeeklyBonusTask == "" {
		o.WeeklyBonusTask = DefaultWeeklyBonusTask
	}
	if o.ReferralTask == "" {
		o.ReferralTask = DefaultReferralTask
	}
	if o.WeeklyThreshold <= 0 {
		o.WeeklyThreshold = DefaultWeeklyThreshold
	}
	return o
}

// Repositories 引擎使用的倉儲
type Repositories struct {
	Tasks       task.TaskRepository
	Accounts    points.AccountRepository
	Completions points.CompletionRepository
	Ledger      points.LedgerRepository
}

// Engine 任務完成引擎
type Engine struct {
	tasks       task.TaskRepository
	accounts    points.AccountRepository
	completions points.CompletionRepository
	poster      *points.LedgerPostingService
	progress    *appprogress.Service
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	clock       shared.Clock
	opts        Options
	log         *logger.Logger
}

// NewEngine 創建完成引擎
//
// progressSvc 提供日曆與本週進度，與 GetWeeklyProgress 使用同一套日界線。
func NewEngine(
	repos Repositories,
	progressSvc *appprogress.Service,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	opts Options,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tasks:       repos.Tasks,
		accounts:    repos.Accounts,
		completions: repos.Completions,
		poster:      points.NewLedgerPostingService(repos.Accounts, repos.Ledger),
		progress:    progressSvc,
		txManager:   txManager,
		publisher:   publisher,
		clock:       clock,
		opts:        opts.withDefaults(),
		log:         log.With("component", "CompletionEngine"),
	}
}

func (e *Engine) calendar() progress.Calendar {
	return e.progress.Calendar()
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.OperationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.opts.OperationTimeout)
}

// loadTask 讀取任務並檢查可由指定路徑完成（在任何副作用之前）
func (e *Engine) loadTask(ctx context.Context, taskIDStr string, expected task.TaskType) (*task.Task, error) {
	taskID, err := task.TaskIDFromString(taskIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task ID: %w", err)
	}
	t, err := e.tasks.FindByID(e.txManager.AutoCommit(ctx), taskID)
	if err != nil {
		return nil, err
	}
	if err := t.EnsureCompletable(expected); err != nil {
		return nil, err
	}
	return t, nil
}

// credit 在 tx 中為已鎖定的帳戶入帳 +task.points
func (e *Engine) credit(
	tx shared.TransactionContext,
	account *points.Account,
	t *task.Task,
	entryType points.EntryType,
	now time.Time,
) error {
	entry, err := points.NewLedgerEntry(account.UserID(), t.Points(), entryType, points.CompletionDescription(t.Name()), now)
	if err != nil {
		return err
	}
	return e.poster.Post(tx, account, entry)
}

// publish 事務提交後發布事件；失敗只記錄
func (e *Engine) publish(account *points.Account) {
	if e.publisher == nil || account == nil {
		return
	}
	events := account.PullEvents()
	if len(events) == 0 {
		return
	}
	if err := e.publisher.PublishBatch(events); err != nil {
		e.log.Warn("failed to publish domain events", "count", len(events), "error", err)
	}
}
