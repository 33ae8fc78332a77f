package shared

import "context"

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - tx 來自 InTransaction：在調用者的事務中執行（事務傳播）
// - tx 來自 AutoCommit：綁定 context.Context 的 auto-commit 模式（單一讀操作）
// - tx == nil：auto-commit 且無 deadline（僅限測試與啟動流程）
//
// Repository 方法約束：
// - 寫操作（Save / Insert / Update / Delete / Append）必須在 InTransaction 中
// - 讀操作可傳入任一種 tx；同一事務中的多次讀取保證一致性
//
// Context 返回綁定的 context.Context，deadline 取消時所在事務回滾。
type TransactionContext interface {
	Context() context.Context
}

// TransactionManager 事務管理器介面
//
// InTransaction 在單一資料庫事務中執行 fn：fn 返回 error 時回滾，否則提交。
// 不做任何隱式重試；重試由調用者決定。
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error

	// AutoCommit 返回綁定 ctx 的非事務上下文，用於獨立查詢
	AutoCommit(ctx context.Context) TransactionContext
}
