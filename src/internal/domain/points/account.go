package points

import (
	"math"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

// ===========================
// Account 聚合根
// ===========================

// Account 積分帳戶聚合根（餘額累加器）
//
// 設計原則：
// 1. 輕量級聚合：不包含帳本記錄（帳本儲存在獨立表）
// 2. 餘額是帳本總和的非正規化快取，只能經由 Apply 改變
// 3. 事件驅動：每次入帳產生 PointsCreditedEvent
//
// 業務不變條件：
// - balance == Σ ledger.amount（同一事務內寫入帳本與餘額）
// - 餘額為有號整數，允許扣減至負數
type Account struct {
	userID  UserID
	balance int

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewAccount 開立新帳戶（餘額 0）
//
// 業務規則：每位使用者只開立一次，由註冊流程呼叫。
func NewAccount(userID UserID, now time.Time) (*Account, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext("reason", "userID cannot be empty")
	}

	account := &Account{
		userID:    userID,
		balance:   0,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		events:    make([]shared.DomainEvent, 0),
	}
	account.addEvent(NewAccountOpenedEvent(userID, now))

	return account, nil
}

// ReconstructAccount 從持久化數據重建帳戶（不產生事件）
func ReconstructAccount(userID UserID, balance int, createdAt, updatedAt time.Time) *Account {
	return &Account{
		userID:    userID,
		balance:   balance,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		events:    make([]shared.DomainEvent, 0),
	}
}

// UserID 獲取使用者 ID
func (a *Account) UserID() UserID {
	return a.userID
}

// Balance 獲取目前餘額
func (a *Account) Balance() int {
	return a.balance
}

// CreatedAt 獲取開戶時間
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt 獲取最後入帳時間
func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}

// Apply 將帳本記錄套用到餘額
//
// 前置條件：entry 屬於此帳戶
// 副作用：更新 balance、updatedAt，產生 PointsCreditedEvent
//
// 錯誤：
// - ErrAccountMismatch：記錄屬於其他使用者
// - ErrBalanceOverflow：餘額超出 int 範圍
func (a *Account) Apply(entry *LedgerEntry) error {
	if !entry.UserID().Equals(a.userID) {
		return ErrAccountMismatch.WithContext(
			"account_user_id", a.userID.String(),
			"entry_user_id", entry.UserID().String(),
		)
	}

	amount := entry.Amount()
	if (amount > 0 && a.balance > math.MaxInt-amount) ||
		(amount < 0 && a.balance < math.MinInt-amount) {
		return ErrBalanceOverflow.WithContext(
			"user_id", a.userID.String(),
			"balance", a.balance,
			"amount", amount,
		)
	}

	a.balance += amount
	a.updatedAt = entry.CreatedAt()
	a.addEvent(NewPointsCreditedEvent(a.userID, entry, a.balance))

	return nil
}

func (a *Account) addEvent(event shared.DomainEvent) {
	a.events = append(a.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// 事務提交後由 Application Layer 取出並交給 EventPublisher。
func (a *Account) PullEvents() []shared.DomainEvent {
	events := a.events
	a.events = make([]shared.DomainEvent, 0)
	return events
}
