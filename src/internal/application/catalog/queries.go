package catalog

import (
	"context"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// QueryService 任務目錄查詢
type QueryService struct {
	taskRepo  task.TaskRepository
	txManager shared.TransactionManager
}

// NewQueryService 創建查詢服務
func NewQueryService(taskRepo task.TaskRepository, txManager shared.TransactionManager) *QueryService {
	return &QueryService{taskRepo: taskRepo, txManager: txManager}
}

// ListActive 啟用中的任務（依名稱排序）
func (s *QueryService) ListActive(ctx context.Context) ([]*task.Task, error) {
	return s.taskRepo.FindActive(s.txManager.AutoCommit(ctx))
}

// GetByID 錯誤：ErrInvalidTaskID、ErrTaskNotFound
func (s *QueryService) GetByID(ctx context.Context, id string) (*task.Task, error) {
	taskID, err := task.TaskIDFromString(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task ID: %w", err)
	}
	return s.taskRepo.FindByID(s.txManager.AutoCommit(ctx), taskID)
}

// GetByName 錯誤：ErrTaskNotFound
func (s *QueryService) GetByName(ctx context.Context, name string) (*task.Task, error) {
	return s.taskRepo.FindByName(s.txManager.AutoCommit(ctx), name)
}
