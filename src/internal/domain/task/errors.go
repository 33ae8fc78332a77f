package task

import "fmt"

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	ErrCodeTaskNotFound    ErrorCode = "TASK_NOT_FOUND"
	ErrCodeTaskInactive    ErrorCode = "TASK_INACTIVE"
	ErrCodeInvalidTaskType ErrorCode = "TASK_INVALID_TYPE"
	ErrCodeInvalidTaskID   ErrorCode = "TASK_ID_INVALID"
	ErrCodeInvalidTask     ErrorCode = "TASK_INVALID"
	ErrCodeInvalidCatalog  ErrorCode = "INVALID_CATALOG"
	ErrCodeTaskNameTaken   ErrorCode = "TASK_NAME_TAKEN"
)

// DomainError 任務目錄領域錯誤
//
// 與 points.DomainError 結構相同：Code 用於 errors.Is 比對，
// Context 記錄調試信息（task_id、name 等）。
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

// WithContext 添加上下文信息（返回新的錯誤實例）
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

	return &DomainError{Code: e.Code, Message: e.Message, Context: ctx}
}

// Is 依錯誤代碼判斷（errors.Is）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// 預定義錯誤
var (
	ErrTaskNotFound = &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: "任務不存在",
	}

	ErrTaskInactive = &DomainError{
		Code:    ErrCodeTaskInactive,
		Message: "任務已停用",
	}

	ErrInvalidTaskType = &DomainError{
		Code:    ErrCodeInvalidTaskType,
		Message: "任務類型不符",
	}

	ErrInvalidTaskID = &DomainError{
		Code:    ErrCodeInvalidTaskID,
		Message: "無效的任務 ID",
	}

	ErrInvalidTask = &DomainError{
		Code:    ErrCodeInvalidTask,
		Message: "無效的任務定義",
	}

	ErrInvalidCatalog = &DomainError{
		Code:    ErrCodeInvalidCatalog,
		Message: "任務目錄格式錯誤",
	}

	// ErrTaskNameTaken 名稱唯一索引衝突（併發 seed）
	ErrTaskNameTaken = &DomainError{
		Code:    ErrCodeTaskNameTaken,
		Message: "任務名稱已存在",
	}
)
