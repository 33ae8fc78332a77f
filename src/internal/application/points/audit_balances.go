package points

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAuditConcurrency = 4
	auditPageSize           = 500
)

// AuditReport 稽核結果
type AuditReport struct {
	Checked  int
	Diverged []points.Divergence
}

// AuditBalancesUseCase 餘額稽核 Use Case
//
// 對每個帳戶在同一個讀事務中讀取餘額與帳本總和並比對。
// 不一致只以 error 等級記錄，不做任何修正。
type AuditBalancesUseCase struct {
	accountRepo points.AccountQueryRepository
	ledgerRepo  points.LedgerRepository
	txManager   shared.TransactionManager
	reconciler  *points.BalanceReconciliationService
	concurrency int
	log         *logger.Logger
}

// NewAuditBalancesUseCase 創建 Use Case 實例；concurrency <= 0 使用預設值
func NewAuditBalancesUseCase(
	accountRepo points.AccountQueryRepository,
	ledgerRepo points.LedgerRepository,
	txManager shared.TransactionManager,
	concurrency int,
	log *logger.Logger,
) *AuditBalancesUseCase {
	if concurrency <= 0 {
		concurrency = defaultAuditConcurrency
	}
	return &AuditBalancesUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		txManager:   txManager,
		reconciler:  points.NewBalanceReconciliationService(),
		concurrency: concurrency,
		log:         log.With("usecase", "AuditBalances"),
	}
}

// Execute 稽核所有帳戶
//
// 持久化錯誤會中止稽核並返回；不一致不算錯誤，收集在報告中。
func (uc *AuditBalancesUseCase) Execute(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}
	var mu sync.Mutex

	var after points.UserID
	for {
		ids, err := uc.accountRepo.FindUserIDsPage(uc.txManager.AutoCommit(ctx), after, auditPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(uc.concurrency)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				d, err := uc.check(gctx, id)
				if err != nil {
					return err
				}
				mu.Lock()
				report.Checked++
				if d != nil {
					report.Diverged = append(report.Diverged, *d)
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		after = ids[len(ids)-1]
	}

	if len(report.Diverged) > 0 {
		uc.log.Error("balance audit found divergent accounts",
			"checked", report.Checked,
			"diverged", len(report.Diverged),
		)
	} else {
		uc.log.Info("balance audit passed", "checked", report.Checked)
	}
	return report, nil
}

// AuditAccount 稽核單一帳戶
//
// 錯誤處理：
// - ErrBalanceDiverged：不一致（附 stored / ledger_sum）
// - ErrAccountNotFound：帳戶不存在
func (uc *AuditBalancesUseCase) AuditAccount(ctx context.Context, userIDStr string) error {
	userID, err := points.UserIDFromString(userIDStr)
	if err != nil {
		return fmt.Errorf("failed to parse user ID: %w", err)
	}
	d, err := uc.check(ctx, userID)
	if err != nil {
		return err
	}
	if d != nil {
		return points.ErrBalanceDiverged.WithContext(
			"user_id", d.UserID.String(),
			"stored", d.Stored,
			"ledger_sum", d.LedgerSum,
		)
	}
	return nil
}

func (uc *AuditBalancesUseCase) check(ctx context.Context, userID points.UserID) (*points.Divergence, error) {
	var divergence *points.Divergence
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		account, err := uc.accountRepo.FindByUserID(tx, userID)
		if err != nil {
			return err
		}
		sum, err := uc.ledgerRepo.SumByUser(tx, userID)
		if err != nil {
			return err
		}
		d, err := uc.reconciler.Reconcile(account, sum)
		if err != nil && !errors.Is(err, points.ErrBalanceDiverged) {
			return err
		}
		divergence = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if divergence != nil {
		uc.log.Error("balance diverged from ledger",
			"user_id", userID.String(),
			"stored", divergence.Stored,
			"ledger_sum", divergence.LedgerSum,
			"delta", divergence.Delta(),
		)
	}
	return divergence, nil
}
