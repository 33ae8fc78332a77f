package completion

import (
	"context"
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// TaskStatus 使用者視角的任務狀態
type TaskStatus struct {
	Task           *task.Task
	Completed      bool // 曾經完成（任何時間）
	CompletedToday bool
	CanComplete    bool
}

// ListTaskStatus 列出啟用中的任務與使用者的完成狀態
//
// - daily：今天未完成即可完成
// - one_time：從未完成即可完成
// - weekly / referral：不能手動完成
func (e *Engine) ListTaskStatus(ctx context.Context, userIDStr string) ([]TaskStatus, error) {
	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	tx := e.txManager.AutoCommit(ctx)
	tasks, err := e.tasks.FindActive(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	completions, err := e.completions.FindByUser(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	latest := make(map[string]*points.Completion, len(completions))
	for _, c := range completions {
		latest[c.TaskID().String()] = c
	}

	now := e.clock.Now()
	cal := e.calendar()

	statuses := make([]TaskStatus, 0, len(tasks))
	for _, t := range tasks {
		s := TaskStatus{Task: t}
		if c, ok := latest[t.ID().String()]; ok {
			s.Completed = true
			s.CompletedToday = cal.SameDay(c.CompletedAt(), now)
		}
		if t.Type().IsManuallyCompletable() {
			s.CanComplete = !s.Completed
			if t.Type().IsRepeatable() {
				s.CanComplete = !s.CompletedToday
			}
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}
