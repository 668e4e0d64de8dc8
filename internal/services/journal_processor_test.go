package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/internal/infrastructure/journal"
	"github.com/rentfolio/backend/repository"
)

type stubHealth struct {
	online bool
}

func (s *stubHealth) IsOnline() bool { return s.online }

type recordingPayments struct {
	created   []domain.Payment
	createErr error
}

func (r *recordingPayments) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	return nil, nil
}

func (r *recordingPayments) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, *payment)
	return payment, nil
}

func newTestProcessor(t *testing.T, health *stubHealth, payments *recordingPayments, maxRetries int) *JournalProcessor {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewJournalProcessor(store, health, payments, zap.NewNop(), ProcessorConfig{
		Interval:   time.Minute,
		BatchSize:  10,
		MaxRetries: maxRetries,
	})
}

func journalPayment(userID string) *domain.Payment {
	return &domain.Payment{
		ID:       "pay-1",
		UserID:   userID,
		TenantID: "t-1",
		Amount:   1500,
		Month:    8,
		Year:     2026,
	}
}

func TestBufferPaymentInsertsImmediatelyWhileOnline(t *testing.T) {
	payments := &recordingPayments{}
	jp := newTestProcessor(t, &stubHealth{online: true}, payments, 3)
	bridge := NewJournalBridge(jp)

	require.NoError(t, bridge.BufferPayment(context.Background(), journalPayment("landlord-1")))
	require.Len(t, payments.created, 1)
	require.Zero(t, jp.Size())
}

func TestBufferPaymentSurfacesInsertErrorWhileOnline(t *testing.T) {
	insertErr := errors.New("violates foreign key constraint")
	payments := &recordingPayments{createErr: insertErr}
	jp := newTestProcessor(t, &stubHealth{online: true}, payments, 3)
	bridge := NewJournalBridge(jp)

	err := bridge.BufferPayment(context.Background(), journalPayment("landlord-1"))
	require.ErrorIs(t, err, insertErr)
	require.Zero(t, jp.Size())
}

func TestBufferPaymentPersistsWhileOffline(t *testing.T) {
	payments := &recordingPayments{}
	jp := newTestProcessor(t, &stubHealth{online: false}, payments, 3)
	bridge := NewJournalBridge(jp)

	require.NoError(t, bridge.BufferPayment(context.Background(), journalPayment("landlord-1")))
	require.Empty(t, payments.created)
	require.Equal(t, 1, jp.Size())
}

func TestDrainReplaysAfterRecovery(t *testing.T) {
	payments := &recordingPayments{}
	health := &stubHealth{online: false}
	jp := newTestProcessor(t, health, payments, 3)
	bridge := NewJournalBridge(jp)

	require.NoError(t, bridge.BufferPayment(context.Background(), journalPayment("landlord-1")))
	require.Equal(t, 1, jp.Size())

	health.online = true
	require.NoError(t, jp.Drain(context.Background()))
	require.Len(t, payments.created, 1)
	require.Equal(t, "landlord-1", payments.created[0].UserID)
	require.Zero(t, jp.Size())
}

func TestDrainSkipsWhileOffline(t *testing.T) {
	payments := &recordingPayments{}
	jp := newTestProcessor(t, &stubHealth{online: false}, payments, 3)
	bridge := NewJournalBridge(jp)

	require.NoError(t, bridge.BufferPayment(context.Background(), journalPayment("landlord-1")))
	require.NoError(t, jp.Drain(context.Background()))
	require.Empty(t, payments.created)
	require.Equal(t, 1, jp.Size())
}

func TestDrainRetriesThenDropsPoisonEntry(t *testing.T) {
	payments := &recordingPayments{createErr: errors.New("violates foreign key constraint")}
	health := &stubHealth{online: false}
	jp := newTestProcessor(t, health, payments, 2)
	bridge := NewJournalBridge(jp)

	require.NoError(t, bridge.BufferPayment(context.Background(), journalPayment("landlord-1")))

	health.online = true
	require.NoError(t, jp.Drain(context.Background()))
	require.Equal(t, 1, jp.Size())

	require.NoError(t, jp.Drain(context.Background()))
	require.Zero(t, jp.Size())
}
