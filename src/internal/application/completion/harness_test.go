package completion

import (
	"context"
	"sync"
	"testing"
	"time"

	appprogress "github.com/jackyeh168/momentum/src/internal/application/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	pointstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/points"
	taskstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/testdb"
	"github.com/jackyeh168/momentum/src/internal/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 2026-03-02 是週一
var monday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

// harness SQLite 上的完整引擎，時鐘可推進
type harness struct {
	db          *gorm.DB
	txManager   *persistence.GORMTransactionManager
	tasks       *taskstore.TaskRepositoryImpl
	accounts    *pointstore.AccountRepositoryImpl
	ledger      *pointstore.LedgerRepositoryImpl
	completions points.CompletionRepository
	progress    *appprogress.Service
	engine      *Engine

	mu  sync.Mutex
	now time.Time
}

func newHarness(t *testing.T, loc *time.Location) *harness {
	t.Helper()
	db := testdb.Open(t)
	h := &harness{
		db:          db,
		txManager:   persistence.NewGORMTransactionManager(db),
		tasks:       taskstore.NewTaskRepository(db),
		accounts:    pointstore.NewAccountRepository(db),
		ledger:      pointstore.NewLedgerRepository(db),
		completions: pointstore.NewCompletionRepository(db),
		now:         monday,
	}
	h.progress = appprogress.NewService(h.ledger, h.txManager, progress.NewCalendar(loc), h, appprogress.Options{})
	h.rebuild()
	return h
}

// rebuild 以目前的倉儲重新組裝引擎（替換 completions 後呼叫）
func (h *harness) rebuild() {
	h.engine = NewEngine(
		Repositories{
			Tasks:       h.tasks,
			Accounts:    h.accounts,
			Completions: h.completions,
			Ledger:      h.ledger,
		},
		h.progress,
		h.txManager,
		nil,
		h,
		Options{OperationTimeout: 5 * time.Second},
		logger.NewNop(),
	)
}

// Now 實現 shared.Clock
func (h *harness) Now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *harness) set(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
}

func (h *harness) advanceDays(n int) {
	h.set(h.Now().AddDate(0, 0, n))
}

func (h *harness) addTask(t *testing.T, name string, taskType task.TaskType, pts int, active bool) *task.Task {
	t.Helper()
	tk, err := task.NewTask(task.Definition{
		Name:     name,
		Type:     taskType,
		Points:   pts,
		Active:   active,
		Category: task.CategoryFocus,
	}, monday)
	require.NoError(t, err)
	require.NoError(t, h.txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		return h.tasks.Save(tx, tk)
	}))
	return tk
}

func (h *harness) openAccount(t *testing.T) points.UserID {
	t.Helper()
	userID := points.NewUserID()
	account, err := points.NewAccount(userID, monday)
	require.NoError(t, err)
	require.NoError(t, h.txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		return h.accounts.Save(tx, account)
	}))
	return userID
}

func (h *harness) balance(t *testing.T, userID points.UserID) int {
	t.Helper()
	account, err := h.accounts.FindByUserID(nil, userID)
	require.NoError(t, err)
	return account.Balance()
}

func (h *harness) ledgerSum(t *testing.T, userID points.UserID) int {
	t.Helper()
	sum, err := h.ledger.SumByUser(nil, userID)
	require.NoError(t, err)
	return sum
}

func (h *harness) entries(t *testing.T, userID points.UserID) []*points.LedgerEntry {
	t.Helper()
	entries, err := h.ledger.FindByUser(nil, userID, 1000)
	require.NoError(t, err)
	return entries
}

func (h *harness) completionRows(t *testing.T, userID points.UserID, taskID task.TaskID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Table("task_completions").
		Where("user_id = ? AND task_id = ?", userID.String(), taskID.String()).
		Count(&n).Error)
	return n
}
