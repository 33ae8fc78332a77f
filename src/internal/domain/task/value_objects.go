package task

// ===========================
// TaskType 任務類型
// ===========================

// TaskType 決定完成規則
//
// - daily：每個參考日最多一次，可每日重複
// - one_time：每位使用者終身一次
// - weekly：由每週進度推導，不能手動完成
// - referral：推薦配對時由系統記錄，不能手動完成
type TaskType string

const (
	TypeDaily    TaskType = "daily"
	TypeOneTime  TaskType = "one_time"
	TypeWeekly   TaskType = "weekly"
	TypeReferral TaskType = "referral"
)

// ParseTaskType 解析任務類型字串
func ParseTaskType(s string) (TaskType, error) {
	switch t := TaskType(s); t {
	case TypeDaily, TypeOneTime, TypeWeekly, TypeReferral:
		return t, nil
	}
	return "", ErrInvalidTaskType.WithContext("type", s)
}

// IsRepeatable 可重複類型的完成記錄會被覆寫（刪除後重新插入）
func (t TaskType) IsRepeatable() bool {
	return t == TypeDaily || t == TypeWeekly
}

// IsManuallyCompletable 使用者可直接觸發完成的類型
func (t TaskType) IsManuallyCompletable() bool {
	return t == TypeDaily || t == TypeOneTime
}

func (t TaskType) String() string {
	return string(t)
}

// ===========================
// Category 任務分類（僅供顯示）
// ===========================

// Category 任務分類
type Category string

const (
	CategoryFocus      Category = "focus"
	CategoryLearning   Category = "learning"
	CategoryOutput     Category = "output"
	CategoryReflection Category = "reflection"
	CategoryEnergy     Category = "energy"
	CategorySystem     Category = "system"
)

// ParseCategory 解析分類；空字串歸入 system
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case "":
		return CategorySystem, nil
	case CategoryFocus, CategoryLearning, CategoryOutput,
		CategoryReflection, CategoryEnergy, CategorySystem:
		return c, nil
	}
	return "", ErrInvalidTask.WithContext("reason", "unknown category", "category", s)
}
