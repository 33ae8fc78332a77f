package points

import (
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// LedgerRepositoryImpl 帳本倉儲實現（GORM）
//
// 只有 INSERT 與 SELECT；帳本記錄永不更新或刪除。
type LedgerRepositoryImpl struct {
	db *gorm.DB
}

// NewLedgerRepository 創建帳本倉儲
func NewLedgerRepository(db *gorm.DB) *LedgerRepositoryImpl {
	return &LedgerRepositoryImpl{db: db}
}

var _ points.LedgerRepository = (*LedgerRepositoryImpl)(nil)

// Append 新增帳本記錄
func (r *LedgerRepositoryImpl) Append(tx shared.TransactionContext, entry *points.LedgerEntry) error {
	if err := persistence.DB(tx, r.db).Create(entryToGORM(entry)).Error; err != nil {
		return fmt.Errorf("append ledger entry for %s: %w", entry.UserID(), err)
	}
	return nil
}

// FindByUser 由新到舊
func (r *LedgerRepositoryImpl) FindByUser(tx shared.TransactionContext, userID points.UserID, limit int) ([]*points.LedgerEntry, error) {
	var models []LedgerEntryGORM
	err := persistence.DB(tx, r.db).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Order("entry_id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list ledger for %s: %w", userID, err)
	}
	return entriesToDomain(models)
}

// FindByUserAndTypeSince 指定類型、createdAt >= since，由舊到新
func (r *LedgerRepositoryImpl) FindByUserAndTypeSince(
	tx shared.TransactionContext,
	userID points.UserID,
	entryType points.EntryType,
	since time.Time,
) ([]*points.LedgerEntry, error) {
	var models []LedgerEntryGORM
	err := persistence.DB(tx, r.db).
		Where("user_id = ? AND entry_type = ? AND created_at >= ?", userID.String(), string(entryType), since.UTC()).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list %s entries for %s: %w", entryType, userID, err)
	}
	return entriesToDomain(models)
}

// SumByUser 帳本總和（無記錄為 0）
func (r *LedgerRepositoryImpl) SumByUser(tx shared.TransactionContext, userID points.UserID) (int, error) {
	var sum int64
	err := persistence.DB(tx, r.db).
		Model(&LedgerEntryGORM{}).
		Where("user_id = ?", userID.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum ledger for %s: %w", userID, err)
	}
	return int(sum), nil
}
