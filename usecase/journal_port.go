package usecase

import (
	"context"

	"github.com/rentfolio/backend/domain"
)

// PaymentJournal abstracts the offline payment buffer so use cases stay
// storage-agnostic. Only append-only payment inserts are journaled; tenancy
// mutations are multi-record and must fail instead of being replayed later.
type PaymentJournal interface {
	BufferPayment(ctx context.Context, payment *domain.Payment) error
}
