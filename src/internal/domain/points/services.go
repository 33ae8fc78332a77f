package points

import (
	"fmt"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

// ===========================
// LedgerPostingService 領域服務
// ===========================

// LedgerPostingService 入帳領域服務
//
// 把「套用到餘額、寫回帳戶、新增帳本記錄」三步綁在一起，
// 讓所有入帳路徑（任務完成、推薦獎勵、手動調整）共用同一順序。
//
// 前置條件：account 已在同一 tx 中以 FindByUserIDForUpdate 鎖定。
type LedgerPostingService struct {
	accounts AccountRepository
	ledger   LedgerRepository
}

// NewLedgerPostingService 建構函數
func NewLedgerPostingService(accounts AccountRepository, ledger LedgerRepository) *LedgerPostingService {
	return &LedgerPostingService{accounts: accounts, ledger: ledger}
}

// Post 在 tx 中入帳
//
// 任一步失敗即返回錯誤，由外層事務回滾；帳戶的記憶體狀態此時已無意義。
func (s *LedgerPostingService) Post(tx shared.TransactionContext, account *Account, entry *LedgerEntry) error {
	if err := account.Apply(entry); err != nil {
		return err
	}
	if err := s.accounts.Update(tx, account); err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if err := s.ledger.Append(tx, entry); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// ===========================
// BalanceReconciliationService 領域服務
// ===========================

// Divergence 餘額與帳本總和的差異
type Divergence struct {
	UserID    UserID
	Stored    int
	LedgerSum int
}

// Delta 帳戶餘額減去帳本總和
func (d Divergence) Delta() int {
	return d.Stored - d.LedgerSum
}

// BalanceReconciliationService 餘額稽核領域服務（無狀態）
type BalanceReconciliationService struct{}

// NewBalanceReconciliationService 建構函數
func NewBalanceReconciliationService() *BalanceReconciliationService {
	return &BalanceReconciliationService{}
}

// Reconcile 比對帳戶餘額與帳本總和
//
// 返回：
//   *Divergence - 不一致時的差異（一致時為 nil）
//   error - 不一致時返回 ErrBalanceDiverged（附 stored / ledger_sum 上下文）
//
// 只回報，不修正：修正必須透過補帳記錄完成。
func (s *BalanceReconciliationService) Reconcile(account *Account, ledgerSum int) (*Divergence, error) {
	if account.Balance() == ledgerSum {
		return nil, nil
	}
	d := &Divergence{
		UserID:    account.UserID(),
		Stored:    account.Balance(),
		LedgerSum: ledgerSum,
	}
	return d, ErrBalanceDiverged.WithContext(
		"user_id", account.UserID().String(),
		"stored", d.Stored,
		"ledger_sum", d.LedgerSum,
	)
}
