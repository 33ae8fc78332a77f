package task

import "github.com/jackyeh168/momentum/src/internal/domain/shared"

// TaskMarker 是 TaskID 的標記類型
type TaskMarker struct{}

// TaskID 任務的唯一標識符
type TaskID = shared.EntityID[TaskMarker]

// NewTaskID 生成新的任務 ID（UUID v4）
func NewTaskID() TaskID {
	return shared.NewEntityID[TaskMarker]()
}

// TaskIDFromString 從字串解析任務 ID，失敗返回 ErrInvalidTaskID
func TaskIDFromString(s string) (TaskID, error) {
	return shared.EntityIDFromString[TaskMarker](s, ErrInvalidTaskID)
}
