package task

import (
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// TaskRepositoryImpl 任務目錄倉儲實現（GORM）
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository 創建任務目錄倉儲
func NewTaskRepository(db *gorm.DB) *TaskRepositoryImpl {
	return &TaskRepositoryImpl{db: db}
}

var _ task.TaskRepository = (*TaskRepositoryImpl)(nil)

// Save 新增任務
//
// 錯誤處理：
// - name 唯一索引衝突 → ErrTaskNameTaken
func (r *TaskRepositoryImpl) Save(tx shared.TransactionContext, t *task.Task) error {
	result := persistence.DB(tx, r.db).Create(toGORM(t))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return task.ErrTaskNameTaken.WithContext("name", t.Name())
		}
		return fmt.Errorf("insert task %q: %w", t.Name(), result.Error)
	}
	return nil
}

// Update 更新可變欄位（type / points / active）
//
// 使用 map 更新，避免 GORM 忽略 active=false 這類零值。
func (r *TaskRepositoryImpl) Update(tx shared.TransactionContext, t *task.Task) error {
	result := persistence.DB(tx, r.db).
		Model(&TaskGORM{}).
		Where("task_id = ?", t.ID().String()).
		Updates(map[string]interface{}{
			"task_type":  string(t.Type()),
			"points":     t.Points(),
			"active":     t.IsActive(),
			"updated_at": t.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("update task %s: %w", t.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrTaskNotFound.WithContext("task_id", t.ID().String())
	}
	return nil
}

// FindByID 根據 ID 查找任務
func (r *TaskRepositoryImpl) FindByID(tx shared.TransactionContext, id task.TaskID) (*task.Task, error) {
	var model TaskGORM
	err := persistence.DB(tx, r.db).Where("task_id = ?", id.String()).First(&model).Error
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, task.ErrTaskNotFound.WithContext("task_id", id.String())
		}
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return model.toDomain()
}

// FindByName 根據名稱查找任務
func (r *TaskRepositoryImpl) FindByName(tx shared.TransactionContext, name string) (*task.Task, error) {
	var model TaskGORM
	err := persistence.DB(tx, r.db).Where("name = ?", name).First(&model).Error
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, task.ErrTaskNotFound.WithContext("name", name)
		}
		return nil, fmt.Errorf("find task %q: %w", name, err)
	}
	return model.toDomain()
}

// FindAll 返回全部任務（含停用）
func (r *TaskRepositoryImpl) FindAll(tx shared.TransactionContext) ([]*task.Task, error) {
	var models []TaskGORM
	if err := persistence.DB(tx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return toDomainList(models)
}

// FindActive 返回啟用中的任務
func (r *TaskRepositoryImpl) FindActive(tx shared.TransactionContext) ([]*task.Task, error) {
	var models []TaskGORM
	err := persistence.DB(tx, r.db).Where("active = ?", true).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	return toDomainList(models)
}

func toDomainList(models []TaskGORM) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(models))
	for i := range models {
		t, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
