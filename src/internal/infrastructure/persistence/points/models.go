package points

import (
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// ===========================
// GORM Models
// ===========================

// AccountGORM 積分帳戶資料表模型
//
// 資料庫約束：
// - user_id: 主鍵（一位使用者一個帳戶，重複開戶由主鍵衝突拒絕）
// - points: 有號整數，等於該使用者帳本 amount 總和
type AccountGORM struct {
	UserID string `gorm:"column:user_id;type:varchar(36);primaryKey"`
	Points int    `gorm:"column:points;not null;default:0;index"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (AccountGORM) TableName() string {
	return "point_accounts"
}

// LedgerEntryGORM 帳本資料表模型（只新增）
//
// idx_ledger_user_type_created 支援連續天數與每週進度的區間查詢。
type LedgerEntryGORM struct {
	EntryID     string    `gorm:"column:entry_id;type:varchar(36);primaryKey"`
	UserID      string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_ledger_user_type_created,priority:1;index:idx_ledger_user_created,priority:1"`
	Amount      int       `gorm:"column:amount;not null;check:amount <> 0"`
	EntryType   string    `gorm:"column:entry_type;type:varchar(32);not null;index:idx_ledger_user_type_created,priority:2"`
	Description string    `gorm:"column:description;type:varchar(255)"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_ledger_user_type_created,priority:3;index:idx_ledger_user_created,priority:2"`
}

// TableName 指定資料表名稱
func (LedgerEntryGORM) TableName() string {
	return "point_transactions"
}

// CompletionGORM 任務完成標記資料表模型
//
// idx_completion_user_task 唯一索引是併發完成的最後防線。
type CompletionGORM struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:idx_completion_user_task,priority:1"`
	TaskID      string    `gorm:"column:task_id;type:varchar(36);not null;uniqueIndex:idx_completion_user_task,priority:2"`
	CompletedAt time.Time `gorm:"column:completed_at;not null"`
}

// TableName 指定資料表名稱
func (CompletionGORM) TableName() string {
	return "task_completions"
}

// ===========================
// Mapper Functions
// ===========================

func (g *AccountGORM) toDomain() (*points.Account, error) {
	userID, err := points.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	return points.ReconstructAccount(userID, g.Points, g.CreatedAt, g.UpdatedAt), nil
}

func accountToGORM(a *points.Account) *AccountGORM {
	return &AccountGORM{
		UserID:    a.UserID().String(),
		Points:    a.Balance(),
		CreatedAt: a.CreatedAt().UTC(),
		UpdatedAt: a.UpdatedAt().UTC(),
	}
}

func (g *LedgerEntryGORM) toDomain() (*points.LedgerEntry, error) {
	entryID, err := points.EntryIDFromString(g.EntryID)
	if err != nil {
		return nil, err
	}
	userID, err := points.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	return points.ReconstructLedgerEntry(
		entryID,
		userID,
		g.Amount,
		points.EntryType(g.EntryType),
		g.Description,
		g.CreatedAt,
	), nil
}

func entryToGORM(e *points.LedgerEntry) *LedgerEntryGORM {
	return &LedgerEntryGORM{
		EntryID:     e.ID().String(),
		UserID:      e.UserID().String(),
		Amount:      e.Amount(),
		EntryType:   string(e.Type()),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt().UTC(),
	}
}

func (g *CompletionGORM) toDomain() (*points.Completion, error) {
	userID, err := points.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	taskID, err := task.TaskIDFromString(g.TaskID)
	if err != nil {
		return nil, err
	}
	return points.ReconstructCompletion(userID, taskID, g.CompletedAt), nil
}

func completionToGORM(c *points.Completion) *CompletionGORM {
	return &CompletionGORM{
		UserID:      c.UserID().String(),
		TaskID:      c.TaskID().String(),
		CompletedAt: c.CompletedAt().UTC(),
	}
}

func entriesToDomain(models []LedgerEntryGORM) ([]*points.LedgerEntry, error) {
	entries := make([]*points.LedgerEntry, 0, len(models))
	for i := range models {
		e, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
