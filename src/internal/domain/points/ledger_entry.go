package points

import (
	"strings"
	"time"
	"unicode/utf8"
)

// maxDescriptionLength 描述欄位長度上限（與資料表欄位一致）
const maxDescriptionLength = 255

// LedgerEntry 帳本記錄（不可變）
//
// 業務規則：
// - amount 為有號整數且不為零（正數為入帳，負數為扣減）
// - 建立後永不修改、永不刪除
// - 帳戶餘額 == 該使用者所有記錄 amount 的總和
type LedgerEntry struct {
	id          EntryID
	userID      UserID
	amount      int
	entryType   EntryType
	description string
	createdAt   time.Time
}

// NewLedgerEntry 建立新的帳本記錄
//
// 錯誤：
// - ErrInvalidUserID：userID 為空
// - ErrInvalidPointsAmount：amount 為零
// - ErrInvalidEntryType：未知類型
func NewLedgerEntry(
	userID UserID,
	amount int,
	entryType EntryType,
	description string,
	createdAt time.Time,
) (*LedgerEntry, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext("reason", "userID cannot be empty")
	}
	if amount == 0 {
		return nil, ErrInvalidPointsAmount.WithContext("user_id", userID.String())
	}
	if _, err := ParseEntryType(string(entryType)); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		description = string([]rune(description)[:maxDescriptionLength])
	}

	return &LedgerEntry{
		id:          NewEntryID(),
		userID:      userID,
		amount:      amount,
		entryType:   entryType,
		description: description,
		createdAt:   createdAt.UTC(),
	}, nil
}

// ReconstructLedgerEntry 從持久化數據重建帳本記錄
func ReconstructLedgerEntry(
	id EntryID,
	userID UserID,
	amount int,
	entryType EntryType,
	description string,
	createdAt time.Time,
) *LedgerEntry {
	return &LedgerEntry{
		id:          id,
		userID:      userID,
		amount:      amount,
		entryType:   entryType,
		description: description,
		createdAt:   createdAt.UTC(),
	}
}

func (e *LedgerEntry) ID() EntryID {
	return e.id
}

func (e *LedgerEntry) UserID() UserID {
	return e.userID
}

func (e *LedgerEntry) Amount() int {
	return e.amount
}

func (e *LedgerEntry) Type() EntryType {
	return e.entryType
}

func (e *LedgerEntry) Description() string {
	return e.description
}

// CreatedAt 建立時間（UTC）
func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}
