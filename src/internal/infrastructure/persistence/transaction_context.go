package persistence

import (
	"context"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
// 設計原則：
// 1. 實作 shared.TransactionContext 介面
// 2. 封裝 *gorm.DB，避免洩漏到 Domain Layer
// 3. 提供 GetDB() 方法供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	db *gorm.DB
}

// GORMContext Infrastructure Layer 內部使用的事務上下文介面
//
// 各倉儲透過型別斷言取得 *gorm.DB，Domain Layer 看不到此介面。
type GORMContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
//
// db 應已透過 WithContext 綁定請求的 context.Context。
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
func (c *gormTransactionContext) GetDB() *gorm.DB {
	return c.db
}

// Context 返回綁定的 context.Context
func (c *gormTransactionContext) Context() context.Context {
	if c.db.Statement != nil && c.db.Statement.Context != nil {
		return c.db.Statement.Context
	}
	return context.Background()
}

// DB 依事務上下文選擇連接
//
// 行為：
//   - tx 為 GORM 事務上下文：使用事務中的 DB
//   - tx 為其他實作：使用 fallback 並綁定 tx.Context()
//   - tx == nil：使用 fallback（auto-commit 模式）
func DB(tx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if tx == nil {
		return fallback
	}
	if g, ok := tx.(GORMContext); ok {
		return g.GetDB()
	}
	return fallback.WithContext(tx.Context())
}
