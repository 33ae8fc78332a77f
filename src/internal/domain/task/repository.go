package task

import "github.com/jackyeh168/momentum/src/internal/domain/shared"

// TaskRepository 任務目錄倉儲介面
//
// 寫操作（Save / Update）必須在事務中；讀操作可選事務參與。
type TaskRepository interface {
	// Save 保存新任務
	// 錯誤：ErrTaskNameTaken（名稱唯一索引衝突）
	Save(tx shared.TransactionContext, task *Task) error

	// Update 更新 type / points / active
	// 錯誤：ErrTaskNotFound
	Update(tx shared.TransactionContext, task *Task) error

	// FindByID 根據 ID 查找；不存在返回 ErrTaskNotFound
	FindByID(tx shared.TransactionContext, id TaskID) (*Task, error)

	// FindByName 根據名稱查找；不存在返回 ErrTaskNotFound
	FindByName(tx shared.TransactionContext, name string) (*Task, error)

	// FindAll 返回全部任務（含停用），依名稱排序
	FindAll(tx shared.TransactionContext) ([]*Task, error)

	// FindActive 返回啟用中的任務，依名稱排序
	FindActive(tx shared.TransactionContext) ([]*Task, error)
}
