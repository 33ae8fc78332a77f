package shared

import "time"

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型，例如 "points.credited"
	OccurredAt() time.Time // 發生時間（UTC）
	AggregateID() string   // 聚合根 ID（使用者 ID）
}

// EventPublisher 事件發布器介面
//
// 設計原則：介面定義在 Domain Layer（使用者），由 Infrastructure 實作。
// 事件只在事務提交後發布；發布失敗不影響已提交的帳本。
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}
