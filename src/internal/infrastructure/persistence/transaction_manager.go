package persistence

import (
	"context"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 GORM 實作 shared.TransactionManager
//
// 行為約定：
// - fn 返回 error 或 panic 時回滾（panic 會在回滾後重新拋出）
// - ctx 的 deadline 套用到事務內每一個 SQL 語句
// - 不做隱式重試
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}

// AutoCommit 返回綁定 ctx 的非事務上下文
func (m *GORMTransactionManager) AutoCommit(ctx context.Context) shared.TransactionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return NewGORMTransactionContext(m.db.WithContext(ctx))
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)
