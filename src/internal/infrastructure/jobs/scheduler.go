// Package jobs 背景排程（cron）
//
// 目前只有唯讀的餘額稽核；每週獎勵與連續天數都在請求路徑上計算，不需要排程。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	apppoints "github.com/jackyeh168/momentum/src/internal/application/points"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// Auditor 稽核入口（*apppoints.AuditBalancesUseCase）
type Auditor interface {
	Execute(ctx context.Context) (*apppoints.AuditReport, error)
}

// Scheduler 管理背景工作
type Scheduler struct {
	cron    *cron.Cron
	auditor Auditor
	timeout time.Duration
	log     *logger.Logger
}

// NewScheduler 建立排程器；loc 為 cron 表達式使用的時區
func NewScheduler(auditor Auditor, loc *time.Location, timeout time.Duration, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		auditor: auditor,
		timeout: timeout,
		log:     log.With("component", "scheduler"),
	}
}

// ScheduleAudit 依 cron 表達式排程稽核；spec 為空時不排程
func (s *Scheduler) ScheduleAudit(ctx context.Context, spec string) error {
	if spec == "" {
		s.log.Info("balance audit schedule disabled")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Debug("[CRON] balance audit")
		s.RunAudit(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule audit %q: %w", spec, err)
	}
	return nil
}

// RunAudit 立即執行一次稽核；錯誤只記錄
func (s *Scheduler) RunAudit(ctx context.Context) *apppoints.AuditReport {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.auditor.Execute(ctx)
	if err != nil {
		s.log.Error("[CRON] balance audit failed", "error", err)
		return nil
	}
	return report
}

// Start 啟動排程
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop 停止排程並等待執行中的工作結束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
