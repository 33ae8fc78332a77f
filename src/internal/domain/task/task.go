package task

import (
	"strings"
	"time"
)

// ===========================
// Task 實體
// ===========================

// Task 任務目錄項目
//
// 業務不變條件：
// - name 非空且全域唯一（人類可讀的鍵，seed 以 name 對應）
// - points > 0
// - 建立後只有 type / points / active 會因重新 seed 而改變
// - 任務永不刪除，只會停用
type Task struct {
	id          TaskID
	name        string
	taskType    TaskType
	points      int
	active      bool
	category    Category
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask 根據目錄定義建立新任務
func NewTask(def Definition, now time.Time) (*Task, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	category, _ := ParseCategory(string(def.Category))

	return &Task{
		id:          NewTaskID(),
		name:        strings.TrimSpace(def.Name),
		taskType:    def.Type,
		points:      def.Points,
		active:      def.Active,
		category:    category,
		description: def.Description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTask 從持久化數據重建任務（不做驗證，不產生新 ID）
func ReconstructTask(
	id TaskID,
	name string,
	taskType TaskType,
	points int,
	active bool,
	category Category,
	description string,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	return &Task{
		id:          id,
		name:        name,
		taskType:    taskType,
		points:      points,
		active:      active,
		category:    category,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Task) ID() TaskID { return t.id }
func (t *Task) Name() string { return t.name }
func (t *Task) Type() TaskType { return t.taskType }
func (t *Task) Points() int { return t.points }
func (t *Task) IsActive() bool { return t.active }
func (t *Task) Category() Category { return t.category }
func (t *Task) Description() string { return t.description }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// ApplyDefinition 以目錄定義覆寫可變欄位（type / points / active）
//
// 返回 true 表示有欄位改變；name、category、description 不受影響。
func (t *Task) ApplyDefinition(def Definition, now time.Time) bool {
	if t.taskType == def.Type && t.points == def.Points && t.active == def.Active {
		return false
	}
	t.taskType = def.Type
	t.points = def.Points
	t.active = def.Active
	t.updatedAt = now
	return true
}

// Deactivate 停用任務；已停用時返回 false
func (t *Task) Deactivate(now time.Time) bool {
	if !t.active {
		return false
	}
	t.active = false
	t.updatedAt = now
	return true
}

// EnsureCompletable 檢查任務可以用指定的完成路徑完成
//
// 錯誤：
// - ErrTaskInactive：任務已停用
// - ErrInvalidTaskType：任務類型與完成路徑不符
func (t *Task) EnsureCompletable(expected TaskType) error {
	if !t.active {
		return ErrTaskInactive.WithContext("task_id", t.id.String(), "name", t.name)
	}
	if t.taskType != expected {
		return ErrInvalidTaskType.WithContext(
			"task_id", t.id.String(),
			"expected", string(expected),
			"actual", string(t.taskType),
		)
	}
	return nil
}
