package services

import (
	"context"
	"encoding/json"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/internal/infrastructure/journal"
	"github.com/rentfolio/backend/usecase"
)

// JournalBridge adapts the processor to the use-case PaymentJournal port.
type JournalBridge struct {
	processor *JournalProcessor
}

func NewJournalBridge(processor *JournalProcessor) *JournalBridge {
	return &JournalBridge{processor: processor}
}

func (b *JournalBridge) BufferPayment(ctx context.Context, payment *domain.Payment) error {
	if b.processor == nil || payment == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(payment)
	if err != nil {
		return err
	}
	entry := journal.Entry{
		ID:      payment.ID,
		UserID:  payment.UserID,
		Payload: payload,
	}
	return b.processor.Enqueue(ctx, entry)
}

var _ usecase.PaymentJournal = (*JournalBridge)(nil)
