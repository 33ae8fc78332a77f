package events

import (
	"sync"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// LogPublisher 把領域事件寫入結構化日誌，並轉交已訂閱的處理器
//
// 目前沒有外部訊息佇列；事件作為稽核軌跡輸出，
// 處理器在呼叫端的 goroutine 中同步執行。
type LogPublisher struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[string][]func(shared.DomainEvent)
}

// NewLogPublisher 創建事件發布器
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{
		log:      log.With("component", "events"),
		handlers: make(map[string][]func(shared.DomainEvent)),
	}
}

var _ shared.EventPublisher = (*LogPublisher)(nil)

// Subscribe 註冊指定事件類型的處理器
func (p *LogPublisher) Subscribe(eventType string, handler func(shared.DomainEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

// Publish 發布單一事件
func (p *LogPublisher) Publish(event shared.DomainEvent) error {
	p.log.Info("domain event",
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	)

	p.mu.RLock()
	handlers := p.handlers[event.EventType()]
	p.mu.RUnlock()
	for _, h := range handlers {
		h(event)
	}
	return nil
}

// PublishBatch 依序發布多個事件
func (p *LogPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, e := range events {
		if err := p.Publish(e); err != nil {
			return err
		}
	}
	return nil
}
