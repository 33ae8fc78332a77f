// Package catalog 載入任務目錄定義（YAML）
package catalog

import (
	"embed"
	"fmt"
	"os"

	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"gopkg.in/yaml.v3"
)

//go:embed default_tasks.yaml
var defaultsFS embed.FS

const defaultsFile = "default_tasks.yaml"

type yamlCatalog struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Points      int    `yaml:"points"`
	Active      *bool  `yaml:"active"` // 省略時為 true
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// LoadDefaults 內建的預設任務目錄
func LoadDefaults() ([]task.Definition, error) {
	raw, err := defaultsFS.ReadFile(defaultsFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return Parse(raw)
}

// LoadFile 從檔案載入目錄；path 為空時返回內建目錄
func LoadFile(path string) ([]task.Definition, error) {
	if path == "" {
		return LoadDefaults()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse 解析 YAML 目錄
//
// 只做格式轉換；欄位合法性由 task.ValidateDefinitions 在 seed 時檢查。
func Parse(raw []byte) ([]task.Definition, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	defs := make([]task.Definition, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		active := true
		if t.Active != nil {
			active = *t.Active
		}
		defs = append(defs, task.Definition{
			Name:        t.Name,
			Type:        task.TaskType(t.Type),
			Points:      t.Points,
			Active:      active,
			Category:    task.Category(t.Category),
			Description: t.Description,
		})
	}
	return defs, nil
}
