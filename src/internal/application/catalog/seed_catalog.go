package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// SeedReport seed 結果統計
type SeedReport struct {
	Created     int
	Updated     int
	Deactivated int
}

// SeedCatalogUseCase 以名稱為鍵的冪等目錄 upsert
//
// 規則：
// - 已存在的名稱：只更新 type / points / active
// - 不存在的名稱：建立新任務
// - 目前啟用但不在清單中的任務：停用（不刪除，保留完成記錄的關聯）
//
// 整份清單先驗證，任一筆不合法即整份拒絕；寫入在單一事務中完成。
type SeedCatalogUseCase struct {
	taskRepo  task.TaskRepository
	txManager shared.TransactionManager
	clock     shared.Clock
	log       *logger.Logger
}

// NewSeedCatalogUseCase 創建 Use Case 實例
func NewSeedCatalogUseCase(
	taskRepo task.TaskRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
	log *logger.Logger,
) *SeedCatalogUseCase {
	return &SeedCatalogUseCase{
		taskRepo:  taskRepo,
		txManager: txManager,
		clock:     clock,
		log:       log.With("usecase", "SeedCatalog"),
	}
}

// Execute 套用目錄定義
//
// 錯誤處理：
// - ErrInvalidCatalog：驗證失敗，沒有任何副作用
func (uc *SeedCatalogUseCase) Execute(ctx context.Context, defs []task.Definition) (*SeedReport, error) {
	if err := task.ValidateDefinitions(defs); err != nil {
		uc.log.Warn("catalog rejected", "error", err)
		return nil, err
	}

	now := uc.clock.Now()
	report := &SeedReport{}

	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		*report = SeedReport{}

		existing, err := uc.taskRepo.FindAll(tx)
		if err != nil {
			return err
		}
		byName := make(map[string]*task.Task, len(existing))
		for _, t := range existing {
			byName[t.Name()] = t
		}

		wanted := make(map[string]struct{}, len(defs))
		for _, def := range defs {
			name := strings.TrimSpace(def.Name)
			wanted[name] = struct{}{}

			current, ok := byName[name]
			if !ok {
				t, err := task.NewTask(def, now)
				if err != nil {
					return err
				}
				if err := uc.taskRepo.Save(tx, t); err != nil {
					return err
				}
				report.Created++
				uc.log.Info("task created", "name", name, "type", def.Type.String(), "points", def.Points)
				continue
			}

			if !current.ApplyDefinition(def, now) {
				uc.log.Debug("task unchanged", "name", name)
				continue
			}
			if err := uc.taskRepo.Update(tx, current); err != nil {
				return err
			}
			report.Updated++
			uc.log.Info("task updated",
				"name", name,
				"type", current.Type().String(),
				"points", current.Points(),
				"active", current.IsActive(),
			)
		}

		for _, t := range existing {
			if _, ok := wanted[t.Name()]; ok {
				continue
			}
			if !t.Deactivate(now) {
				continue
			}
			if err := uc.taskRepo.Update(tx, t); err != nil {
				return err
			}
			report.Deactivated++
			uc.log.Info("task deactivated", "name", t.Name())
		}
		return nil
	})
	if err != nil {
		uc.log.Error("catalog seed failed", "error", err)
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	uc.log.Info("catalog seeded",
		"created", report.Created,
		"updated", report.Updated,
		"deactivated", report.Deactivated,
	)
	return report, nil
}
