// Package schema 集中管理資料表遷移
package schema

import (
	"fmt"

	pointstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/points"
	taskstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/task"
	"gorm.io/gorm"
)

// Models 所有需要遷移的 GORM 模型
func Models() []interface{} {
	return []interface{}{
		&taskstore.TaskGORM{},
		&pointstore.AccountGORM{},
		&pointstore.LedgerEntryGORM{},
		&pointstore.CompletionGORM{},
	}
}

// Migrate 建立或更新資料表與索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
