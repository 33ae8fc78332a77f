package task

import (
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// ===========================
// GORM Models
// ===========================

// TaskGORM 任務目錄資料表模型
//
// 資料庫約束：
// - task_id: 主鍵（UUID）
// - name: 唯一索引（seed 以名稱對應）
// - points: > 0
// - active: 不設資料庫預設值，否則 Create 會略過 false 而寫入預設值
type TaskGORM struct {
	TaskID      string `gorm:"column:task_id;type:varchar(36);primaryKey"`
	Name        string `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	TaskType    string `gorm:"column:task_type;type:varchar(16);not null"`
	Points      int    `gorm:"column:points;not null;check:points > 0"`
	Active      bool   `gorm:"column:active;not null;index"`
	Category    string `gorm:"column:category;type:varchar(32)"`
	Description string `gorm:"column:description;type:varchar(255)"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (TaskGORM) TableName() string {
	return "tasks"
}

// toDomain 將 GORM 模型轉換為 Domain 實體
func (g *TaskGORM) toDomain() (*task.Task, error) {
	id, err := task.TaskIDFromString(g.TaskID)
	if err != nil {
		return nil, err
	}
	taskType, err := task.ParseTaskType(g.TaskType)
	if err != nil {
		return nil, err
	}

	return task.ReconstructTask(
		id,
		g.Name,
		taskType,
		g.Points,
		g.Active,
		task.Category(g.Category),
		g.Description,
		g.CreatedAt,
		g.UpdatedAt,
	), nil
}

// toGORM 將 Domain 實體轉換為 GORM 模型
func toGORM(t *task.Task) *TaskGORM {
	return &TaskGORM{
		TaskID:      t.ID().String(),
		Name:        t.Name(),
		TaskType:    string(t.Type()),
		Points:      t.Points(),
		Active:      t.IsActive(),
		Category:    string(t.Category()),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt().UTC(),
		UpdatedAt:   t.UpdatedAt().UTC(),
	}
}
