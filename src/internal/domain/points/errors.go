package points

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	// 識別碼
	ErrCodeInvalidUserID  ErrorCode = "INVALID_USER_ID"
	ErrCodeInvalidEntryID ErrorCode = "ENTRY_ID_INVALID"

	// 帳本
	ErrCodeInvalidPointsAmount ErrorCode = "INVALID_POINTS_AMOUNT"
	ErrCodeInvalidEntryType    ErrorCode = "INVALID_ENTRY_TYPE"
	ErrCodeBalanceOverflow     ErrorCode = "BALANCE_OVERFLOW"
	ErrCodeBalanceDiverged     ErrorCode = "BALANCE_DIVERGED"
	ErrCodeAccountMismatch     ErrorCode = "ACCOUNT_MISMATCH"

	// 完成記錄
	ErrCodeAlreadyCompletedToday ErrorCode = "ALREADY_COMPLETED_TODAY"
	ErrCodeAlreadyCompleted      ErrorCode = "ALREADY_COMPLETED"
	ErrCodeInvalidReferral       ErrorCode = "INVALID_REFERRAL"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼（呼叫端據此對應回應）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)

	for k, v := range e.Context {
		ctx[k] = v
	}

	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（以錯誤代碼判斷）
//
// 預先檢查與唯一索引衝突兩條路徑產生的錯誤代碼相同，
// 呼叫端用 errors.Is(err, ErrAlreadyCompletedToday) 即可，不需區分來源。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 預定義錯誤
// ===========================

// 識別碼相關錯誤
var (
	ErrInvalidUserID = &DomainError{
		Code:    ErrCodeInvalidUserID,
		Message: "無效的使用者 ID",
	}

	ErrInvalidEntryID = &DomainError{
		Code:    ErrCodeInvalidEntryID,
		Message: "無效的帳本記錄 ID",
	}
)

// 帳本相關錯誤
var (
	ErrInvalidPointsAmount = &DomainError{
		Code:    ErrCodeInvalidPointsAmount,
		Message: "積分異動數量不能為零",
	}

	ErrInvalidEntryType = &DomainError{
		Code:    ErrCodeInvalidEntryType,
		Message: "無效的帳本記錄類型",
	}

	ErrBalanceOverflow = &DomainError{
		Code:    ErrCodeBalanceOverflow,
		Message: "積分餘額溢位",
	}

	// ErrBalanceDiverged 帳戶餘額與帳本總和不一致（只告警，不自動修正）
	ErrBalanceDiverged = &DomainError{
		Code:    ErrCodeBalanceDiverged,
		Message: "積分餘額與帳本總和不一致",
	}

	ErrAccountMismatch = &DomainError{
		Code:    ErrCodeAccountMismatch,
		Message: "帳本記錄不屬於此帳戶",
	}
)

// 完成記錄相關錯誤
var (
	ErrAlreadyCompletedToday = &DomainError{
		Code:    ErrCodeAlreadyCompletedToday,
		Message: "今天已完成此任務",
	}

	ErrAlreadyCompleted = &DomainError{
		Code:    ErrCodeAlreadyCompleted,
		Message: "此任務已完成",
	}

	ErrInvalidReferral = &DomainError{
		Code:    ErrCodeInvalidReferral,
		Message: "無效的推薦配對",
	}
)
