// Package testdb 提供整合測試用的 SQLite 記憶體資料庫
package testdb

import (
	"testing"

	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/schema"
	"gorm.io/gorm"
)

// Open 創建已遷移的 SQLite in-memory 資料庫
//
// 設計原則：
// 1. 隔離性：每個測試使用獨立的 in-memory DB
// 2. 真實性：使用真實 SQL 引擎與唯一索引，而非 Mock
// 3. 單一連線：併發測試中的事務依序取得連線
//
// 測試結束時自動關閉連線（資料隨之清除）。
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := persistence.Open(persistence.DatabaseConfig{
		Driver:   persistence.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		tb.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := schema.Migrate(db); err != nil {
		tb.Fatalf("Failed to migrate test database: %v", err)
	}

	tb.Cleanup(func() {
		_ = persistence.Close(db)
	})

	return db
}
