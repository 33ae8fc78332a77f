package points

import (
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
)

// ===========================
// Account Repository 介面
// ===========================

// AccountRepository 積分帳戶倉儲介面（核心操作）
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 介面隔離原則（ISP）：核心操作與排行榜/稽核查詢分離
// 3. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏
//
// 事務使用範例：
//   txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
//       account, _ := repo.FindByUserIDForUpdate(tx, userID)
//       return poster.Post(tx, account, entry)
//   })
type AccountRepository interface {
	// Save 開立新帳戶
	// 錯誤：ErrAccountAlreadyExists（主鍵衝突，不做 check-then-insert）
	Save(tx shared.TransactionContext, account *Account) error

	// FindByUserID 查找帳戶；不存在返回 ErrAccountNotFound
	FindByUserID(tx shared.TransactionContext, userID UserID) (*Account, error)

	// FindByUserIDForUpdate 查找並鎖定帳戶列（SELECT ... FOR UPDATE）
	// 同一使用者的所有寫入因此串行化；tx 必須來自 InTransaction
	FindByUserIDForUpdate(tx shared.TransactionContext, userID UserID) (*Account, error)

	// Update 寫回餘額與 updatedAt
	// 錯誤：ErrAccountNotFound
	Update(tx shared.TransactionContext, account *Account) error
}

// AccountQueryRepository 積分帳戶查詢介面（批次操作）
//
// 使用場景：
// - 餘額稽核（逐一比對帳本總和）
// - 排行榜與百分位
type AccountQueryRepository interface {
	AccountRepository

	// FindUserIDsPage 依 user_id 排序分頁列出帳戶 ID（after 為上一頁最後一筆，空值表示第一頁）
	FindUserIDsPage(tx shared.TransactionContext, after UserID, limit int) ([]UserID, error)

	// FindTopByBalance 依餘額由高到低返回前 limit 筆
	FindTopByBalance(tx shared.TransactionContext, limit int) ([]*Account, error)

	// CountWithBalanceAbove 餘額嚴格大於 balance 的帳戶數
	CountWithBalanceAbove(tx shared.TransactionContext, balance int) (int64, error)

	// Count 帳戶總數
	Count(tx shared.TransactionContext) (int64, error)
}

// ===========================
// Ledger Repository 介面
// ===========================

// LedgerRepository 帳本倉儲介面（只新增，不修改不刪除）
type LedgerRepository interface {
	// Append 新增一筆帳本記錄；必須與帳戶餘額更新在同一事務
	Append(tx shared.TransactionContext, entry *LedgerEntry) error

	// FindByUser 依建立時間由新到舊返回最多 limit 筆
	FindByUser(tx shared.TransactionContext, userID UserID, limit int) ([]*LedgerEntry, error)

	// FindByUserAndTypeSince 返回 createdAt >= since 的指定類型記錄（由舊到新）
	FindByUserAndTypeSince(tx shared.TransactionContext, userID UserID, entryType EntryType, since time.Time) ([]*LedgerEntry, error)

	// SumByUser 使用者所有記錄 amount 總和（無記錄為 0）
	SumByUser(tx shared.TransactionContext, userID UserID) (int, error)
}

// ===========================
// Completion Repository 介面
// ===========================

// CompletionRepository 完成標記倉儲介面
type CompletionRepository interface {
	// Find 查找 (userID, taskID) 的完成標記；不存在返回 ErrCompletionNotFound
	Find(tx shared.TransactionContext, userID UserID, taskID task.TaskID) (*Completion, error)

	// Insert 新增完成標記
	// 錯誤：ErrCompletionExists（唯一索引衝突，通常來自併發請求）
	Insert(tx shared.TransactionContext, completion *Completion) error

	// Delete 刪除 (userID, taskID) 的完成標記（不存在時不報錯）
	Delete(tx shared.TransactionContext, userID UserID, taskID task.TaskID) error

	// FindByUser 使用者所有完成標記
	FindByUser(tx shared.TransactionContext, userID UserID) ([]*Completion, error)
}

// ===========================
// Repository 錯誤定義
// ===========================

// Repository 相關錯誤代碼
const (
	ErrCodeAccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountAlreadyExists ErrorCode = "ACCOUNT_ALREADY_EXISTS"
	ErrCodeCompletionNotFound   ErrorCode = "COMPLETION_NOT_FOUND"
	ErrCodeCompletionExists     ErrorCode = "COMPLETION_EXISTS"
)

// Repository 錯誤實例
var (
	// ErrAccountNotFound 帳戶不存在
	ErrAccountNotFound = &DomainError{
		Code:    ErrCodeAccountNotFound,
		Message: "積分帳戶不存在",
	}

	// ErrAccountAlreadyExists 帳戶已存在
	ErrAccountAlreadyExists = &DomainError{
		Code:    ErrCodeAccountAlreadyExists,
		Message: "積分帳戶已存在",
	}

	// ErrCompletionNotFound 完成標記不存在
	ErrCompletionNotFound = &DomainError{
		Code:    ErrCodeCompletionNotFound,
		Message: "完成記錄不存在",
	}

	// ErrCompletionExists 完成標記唯一索引衝突
	// Application Layer 會依完成路徑轉換為 ErrAlreadyCompletedToday / ErrAlreadyCompleted
	ErrCompletionExists = &DomainError{
		Code:    ErrCodeCompletionExists,
		Message: "完成記錄已存在",
	}
)
