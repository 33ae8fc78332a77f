package points

import (
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// AccountRepositoryImpl
// ===========================

// AccountRepositoryImpl 積分帳戶倉儲實現（GORM）
//
// 實作 points.AccountQueryRepository（核心操作 + 排行榜/稽核查詢），
// 並將 GORM 錯誤轉換為 Domain 錯誤。
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// NewAccountRepository 創建積分帳戶倉儲
func NewAccountRepository(db *gorm.DB) *AccountRepositoryImpl {
	return &AccountRepositoryImpl{db: db}
}

var _ points.AccountQueryRepository = (*AccountRepositoryImpl)(nil)

// Save 開立新帳戶
//
// 錯誤處理：
// - 主鍵衝突 → ErrAccountAlreadyExists
func (r *AccountRepositoryImpl) Save(tx shared.TransactionContext, account *points.Account) error {
	result := persistence.DB(tx, r.db).Create(accountToGORM(account))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return points.ErrAccountAlreadyExists.WithContext(
				"user_id", account.UserID().String(),
			)
		}
		return fmt.Errorf("insert account: %w", result.Error)
	}
	return nil
}

// FindByUserID 根據使用者 ID 查找帳戶
func (r *AccountRepositoryImpl) FindByUserID(tx shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	return r.find(persistence.DB(tx, r.db), userID)
}

// FindByUserIDForUpdate 查找並鎖定帳戶列
//
// PostgreSQL 產生 SELECT ... FOR UPDATE；SQLite 方言忽略此子句，
// 由資料庫層級的寫鎖與單一連線串行化。
func (r *AccountRepositoryImpl) FindByUserIDForUpdate(tx shared.TransactionContext, userID points.UserID) (*points.Account, error) {
	db := persistence.DB(tx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.find(db, userID)
}

func (r *AccountRepositoryImpl) find(db *gorm.DB, userID points.UserID) (*points.Account, error) {
	var model AccountGORM
	err := db.Where("user_id = ?", userID.String()).First(&model).Error
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, points.ErrAccountNotFound.WithContext(
				"user_id", userID.String(),
			)
		}
		return nil, fmt.Errorf("find account %s: %w", userID, err)
	}
	return model.toDomain()
}

// Update 寫回餘額
//
// 使用 map 更新：餘額可能為 0，Updates(struct) 會忽略零值。
func (r *AccountRepositoryImpl) Update(tx shared.TransactionContext, account *points.Account) error {
	result := persistence.DB(tx, r.db).
		Model(&AccountGORM{}).
		Where("user_id = ?", account.UserID().String()).
		Updates(map[string]interface{}{
			"points":     account.Balance(),
			"updated_at": account.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("update account %s: %w", account.UserID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return points.ErrAccountNotFound.WithContext(
			"user_id", account.UserID().String(),
		)
	}
	return nil
}

// ===========================
// 查詢操作
// ===========================

// FindUserIDsPage 依 user_id 分頁列出帳戶
func (r *AccountRepositoryImpl) FindUserIDsPage(tx shared.TransactionContext, after points.UserID, limit int) ([]points.UserID, error) {
	db := persistence.DB(tx, r.db).Model(&AccountGORM{}).Order("user_id ASC").Limit(limit)
	if !after.IsEmpty() {
		db = db.Where("user_id > ?", after.String())
	}

	var raw []string
	if err := db.Pluck("user_id", &raw).Error; err != nil {
		return nil, fmt.Errorf("list account ids: %w", err)
	}

	ids := make([]points.UserID, 0, len(raw))
	for _, s := range raw {
		id, err := points.UserIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FindTopByBalance 依餘額由高到低（同分依開戶時間）
func (r *AccountRepositoryImpl) FindTopByBalance(tx shared.TransactionContext, limit int) ([]*points.Account, error) {
	var models []AccountGORM
	err := persistence.DB(tx, r.db).
		Order("points DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list top accounts: %w", err)
	}

	accounts := make([]*points.Account, 0, len(models))
	for i := range models {
		a, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// CountWithBalanceAbove 餘額嚴格大於 balance 的帳戶數
func (r *AccountRepositoryImpl) CountWithBalanceAbove(tx shared.TransactionContext, balance int) (int64, error) {
	var n int64
	err := persistence.DB(tx, r.db).Model(&AccountGORM{}).Where("points > ?", balance).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count accounts above %d: %w", balance, err)
	}
	return n, nil
}

// Count 帳戶總數
func (r *AccountRepositoryImpl) Count(tx shared.TransactionContext) (int64, error) {
	var n int64
	if err := persistence.DB(tx, r.db).Model(&AccountGORM{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
