package points

import (
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

// ===========================
// UserID - 使用者 ID
// ===========================

// UserMarker 是 UserID 的標記類型
type UserMarker struct{}

// UserID 使用者的唯一標識符
//
// 由外部註冊流程產生並驗證身分；本引擎只信任其穩定性，
// 積分帳戶與使用者 1:1，以 UserID 作為帳戶主鍵。
type UserID = shared.EntityID[UserMarker]

// NewUserID 生成新的使用者 ID（UUID v4），主要供測試使用
func NewUserID() UserID {
	return shared.NewEntityID[UserMarker]()
}

// UserIDFromString 從字串解析使用者 ID
//
// 錯誤：ErrInvalidUserID（附帶 input 與 parse_error 上下文）
func UserIDFromString(s string) (UserID, error) {
	return shared.EntityIDFromString[UserMarker](s, ErrInvalidUserID)
}

// ===========================
// EntryID - 帳本記錄 ID
// ===========================

// EntryMarker 是 EntryID 的標記類型
type EntryMarker struct{}

// EntryID 帳本記錄的唯一標識符
type EntryID = shared.EntityID[EntryMarker]

// NewEntryID 生成新的帳本記錄 ID（UUID v4）
func NewEntryID() EntryID {
	return shared.NewEntityID[EntryMarker]()
}

// EntryIDFromString 從字串解析帳本記錄 ID
func EntryIDFromString(s string) (EntryID, error) {
	return shared.EntityIDFromString[EntryMarker](s, ErrInvalidEntryID)
}
