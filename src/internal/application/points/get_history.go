package points

import (
	"context"
	"fmt"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/points"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// GetHistoryQuery 查詢帳本歷史
type GetHistoryQuery struct {
	UserID string
	Limit  int // <= 0 使用預設值
}

// HistoryEntry 帳本記錄 DTO
type HistoryEntry struct {
	ID          string
	Amount      int
	Type        string
	Description string
	CreatedAt   time.Time
}

// GetHistoryUseCase 帳本歷史 Use Case（由新到舊）
type GetHistoryUseCase struct {
	ledgerRepo points.LedgerRepository
	txManager  shared.TransactionManager
}

// NewGetHistoryUseCase 創建 Use Case 實例
func NewGetHistoryUseCase(ledgerRepo points.LedgerRepository, txManager shared.TransactionManager) *GetHistoryUseCase {
	return &GetHistoryUseCase{ledgerRepo: ledgerRepo, txManager: txManager}
}

// Execute 查詢歷史
func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) ([]HistoryEntry, error) {
	userID, err := points.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	limit := query.Limit
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	entries, err := uc.ledgerRepo.FindByUser(uc.txManager.AutoCommit(ctx), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntry{
			ID:          e.ID().String(),
			Amount:      e.Amount(),
			Type:        e.Type().String(),
			Description: e.Description(),
			CreatedAt:   e.CreatedAt(),
		})
	}
	return history, nil
}
