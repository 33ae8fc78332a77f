package points

import (
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// Completion 任務完成標記
//
// 每個 (使用者, 任務) 最多一筆，由唯一索引保證。
// 可重複的任務（daily / weekly）以刪除後重新插入的方式覆寫，
// 因此它只代表「最後一次完成」；完整歷史在帳本中。
type Completion struct {
	userID      UserID
	taskID      task.TaskID
	completedAt time.Time
}

// NewCompletion 建立完成標記
func NewCompletion(userID UserID, taskID task.TaskID, completedAt time.Time) (*Completion, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext("reason", "userID cannot be empty")
	}
	if taskID.IsEmpty() {
		return nil, task.ErrInvalidTaskID.WithContext("reason", "taskID cannot be empty")
	}
	return &Completion{
		userID:      userID,
		taskID:      taskID,
		completedAt: completedAt.UTC(),
	}, nil
}

// ReconstructCompletion 從持久化數據重建完成標記
func ReconstructCompletion(userID UserID, taskID task.TaskID, completedAt time.Time) *Completion {
	return &Completion{
		userID:      userID,
		taskID:      taskID,
		completedAt: completedAt.UTC(),
	}
}

func (c *Completion) UserID() UserID {
	return c.userID
}

func (c *Completion) TaskID() task.TaskID {
	return c.taskID
}

// CompletedAt 完成時間（UTC）
func (c *Completion) CompletedAt() time.Time {
	return c.completedAt
}

// CompletedSince 完成時間是否不早於 boundary（如本週一 00:00）
func (c *Completion) CompletedSince(boundary time.Time) bool {
	return !c.completedAt.Before(boundary)
}
