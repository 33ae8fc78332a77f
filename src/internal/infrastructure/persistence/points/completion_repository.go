package points

import (
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// CompletionRepositoryImpl 完成標記倉儲實現（GORM）
type CompletionRepositoryImpl struct {
	db *gorm.DB
}

// NewCompletionRepository 創建完成標記倉儲
func NewCompletionRepository(db *gorm.DB) *CompletionRepositoryImpl {
	return &CompletionRepositoryImpl{db: db}
}

var _ points.CompletionRepository = (*CompletionRepositoryImpl)(nil)

// Find 查找 (userID, taskID) 的完成標記
func (r *CompletionRepositoryImpl) Find(tx shared.TransactionContext, userID points.UserID, taskID task.TaskID) (*points.Completion, error) {
	var model CompletionGORM
	err := persistence.DB(tx, r.db).
		Where("user_id = ? AND task_id = ?", userID.String(), taskID.String()).
		First(&model).Error
	if err != nil {
		if persistence.IsNotFound(err) {
			return nil, points.ErrCompletionNotFound.WithContext(
				"user_id", userID.String(),
				"task_id", taskID.String(),
			)
		}
		return nil, fmt.Errorf("find completion: %w", err)
	}
	return model.toDomain()
}

// Insert 新增完成標記
//
// 錯誤處理：
// - (user_id, task_id) 唯一索引衝突 → ErrCompletionExists
func (r *CompletionRepositoryImpl) Insert(tx shared.TransactionContext, completion *points.Completion) error {
	result := persistence.DB(tx, r.db).Create(completionToGORM(completion))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return points.ErrCompletionExists.WithContext(
				"user_id", completion.UserID().String(),
				"task_id", completion.TaskID().String(),
			)
		}
		return fmt.Errorf("insert completion: %w", result.Error)
	}
	return nil
}

// Delete 刪除 (userID, taskID) 的完成標記
func (r *CompletionRepositoryImpl) Delete(tx shared.TransactionContext, userID points.UserID, taskID task.TaskID) error {
	err := persistence.DB(tx, r.db).
		Where("user_id = ? AND task_id = ?", userID.String(), taskID.String()).
		Delete(&CompletionGORM{}).Error
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

// FindByUser 使用者所有完成標記
func (r *CompletionRepositoryImpl) FindByUser(tx shared.TransactionContext, userID points.UserID) ([]*points.Completion, error) {
	var models []CompletionGORM
	err := persistence.DB(tx, r.db).
		Where("user_id = ?", userID.String()).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list completions for %s: %w", userID, err)
	}

	completions := make([]*points.Completion, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, nil
}
