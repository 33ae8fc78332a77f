package task

import "strings"

// Definition 任務目錄的單筆定義（seed 來源）
type Definition struct {
	Name        string
	Type        TaskType
	Points      int
	Active      bool
	Category    Category
	Description string
}

// Validate 檢查單筆定義
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidTask.WithContext("reason", "name is blank")
	}
	if _, err := ParseTaskType(string(d.Type)); err != nil {
		return ErrInvalidTask.WithContext("reason", "unknown type", "name", d.Name, "type", string(d.Type))
	}
	if d.Points <= 0 {
		return ErrInvalidTask.WithContext("reason", "points must be positive", "name", d.Name, "points", d.Points)
	}
	if _, err := ParseCategory(string(d.Category)); err != nil {
		return ErrInvalidTask.WithContext("reason", "unknown category", "name", d.Name, "category", string(d.Category))
	}
	return nil
}

// ValidateDefinitions 驗證整份目錄
//
// 任一筆不合法或名稱重複即整份拒絕（ErrInvalidCatalog），
// 讓 seed 在產生任何副作用前失敗。
func ValidateDefinitions(defs []Definition) error {
	seen := make(map[string]int, len(defs))
	for i, def := range defs {
		if err := def.Validate(); err != nil {
			return ErrInvalidCatalog.WithContext("row", i, "cause", err.Error())
		}
		name := strings.TrimSpace(def.Name)
		if prev, dup := seen[name]; dup {
			return ErrInvalidCatalog.WithContext("row", i, "duplicate_of", prev, "name", name)
		}
		seen[name] = i
	}
	return nil
}
