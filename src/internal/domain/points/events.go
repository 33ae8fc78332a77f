package points

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// AccountOpened 領域事件
// ===========================

// AccountOpenedEvent 積分帳戶開立事件
type AccountOpenedEvent struct {
	eventID    string
	userID     UserID
	occurredAt time.Time
}

// NewAccountOpenedEvent 創建帳戶開立事件
func NewAccountOpenedEvent(userID UserID, occurredAt time.Time) *AccountOpenedEvent {
	return &AccountOpenedEvent{
		eventID:    uuid.New().String(),
		userID:     userID,
		occurredAt: occurredAt.UTC(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *AccountOpenedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *AccountOpenedEvent) EventType() string {
	return "points.account_opened"
}

// OccurredAt 實現 DomainEvent 介面
func (e *AccountOpenedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *AccountOpenedEvent) AggregateID() string {
	return e.userID.String()
}

// UserID 獲取使用者 ID
func (e *AccountOpenedEvent) UserID() UserID {
	return e.userID
}

// ===========================
// PointsCredited 領域事件
// ===========================

// PointsCreditedEvent 積分異動事件（正負皆可）
type PointsCreditedEvent struct {
	eventID     string
	userID      UserID
	entryID     EntryID
	amount      int
	entryType   EntryType
	description string
	balance     int
	occurredAt  time.Time
}

// NewPointsCreditedEvent 由帳本記錄創建積分異動事件
func NewPointsCreditedEvent(userID UserID, entry *LedgerEntry, balance int) *PointsCreditedEvent {
	return &PointsCreditedEvent{
		eventID:     uuid.New().String(),
		userID:      userID,
		entryID:     entry.ID(),
		amount:      entry.Amount(),
		entryType:   entry.Type(),
		description: entry.Description(),
		balance:     balance,
		occurredAt:  entry.CreatedAt(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsCreditedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsCreditedEvent) EventType() string {
	return "points.credited"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsCreditedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsCreditedEvent) AggregateID() string {
	return e.userID.String()
}

// EntryID 獲取帳本記錄 ID
func (e *PointsCreditedEvent) EntryID() EntryID {
	return e.entryID
}

// Amount 獲取異動數量
func (e *PointsCreditedEvent) Amount() int {
	return e.amount
}

// EntryType 獲取帳本記錄類型
func (e *PointsCreditedEvent) EntryType() EntryType {
	return e.entryType
}

// Description 獲取描述
func (e *PointsCreditedEvent) Description() string {
	return e.description
}

// Balance 獲取異動後餘額
func (e *PointsCreditedEvent) Balance() int {
	return e.balance
}
