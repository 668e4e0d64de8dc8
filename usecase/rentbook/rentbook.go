// Package rentbook covers the money side: logging rent payments, resolving a
// tenant's current rent status, and the landlord dashboard rollup.
package rentbook

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
	"github.com/rentfolio/backend/usecase"
)

type UseCase struct {
	payments   repository.PaymentRepository
	tenants    repository.TenantRepository
	properties repository.PropertyRepository
	journal    usecase.PaymentJournal
	now        func() time.Time
	logger     *zap.Logger
}

func New(
	payments repository.PaymentRepository,
	tenants repository.TenantRepository,
	properties repository.PropertyRepository,
	journal usecase.PaymentJournal,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		payments:   payments,
		tenants:    tenants,
		properties: properties,
		journal:    journal,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock overrides the time source, for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// LogPaymentInput carries the caller-supplied fields for a payment record.
type LogPaymentInput struct {
	TenantID   string
	PropertyID string
	Amount     float64
	Date       time.Time
}

func (uc *UseCase) ListPayments(ctx context.Context, userID, tenantID string) ([]domain.Payment, error) {
	return uc.payments.List(ctx, repository.PaymentFilter{UserID: userID, TenantID: tenantID})
}

// LogPayment appends a payment record. Month and year are derived from the
// payment date here, once, so status lookups can match exactly. If the store
// is unreachable the record is journaled for replay and accepted.
func (uc *UseCase) LogPayment(ctx context.Context, userID string, input LogPaymentInput) (*domain.Payment, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.TenantID == "" || input.PropertyID == "" {
		return nil, domain.ErrInvalidPayload
	}

	payment := &domain.Payment{
		UserID:     userID,
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		Amount:     input.Amount,
		Date:       input.Date,
		Month:      int(input.Date.Month()),
		Year:       input.Date.Year(),
	}

	created, err := uc.payments.Create(ctx, payment)
	if err != nil {
		if uc.shouldJournal(ctx, payment) {
			return payment, nil
		}
		return nil, err
	}
	return created, nil
}

// RentStatus resolves the tenant's position for the current calendar month.
func (uc *UseCase) RentStatus(ctx context.Context, userID, tenantID string, rent float64) (domain.RentStatus, error) {
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{UserID: userID, TenantID: tenantID})
	if err != nil {
		return domain.RentStatus{}, err
	}
	return Resolve(payments, tenantID, rent, uc.now()), nil
}

// Resolve derives a tenant's rent status from the payment history and clock.
// Paid when some payment matches the tenant and the current month and year
// exactly; Overdue with the full rent due otherwise. PaymentDue exists in the
// enumeration but is never produced here.
func Resolve(payments []domain.Payment, tenantID string, rent float64, now time.Time) domain.RentStatus {
	month := int(now.Month())
	year := now.Year()

	for _, p := range payments {
		if p.TenantID == tenantID && p.Month == month && p.Year == year {
			return domain.RentStatus{Status: domain.PaymentPaid, AmountDue: 0}
		}
	}
	return domain.RentStatus{Status: domain.PaymentOverdue, AmountDue: rent}
}

// Summary builds the dashboard rollup: unit counts, rent collected this
// calendar month, and the overdue total across occupied units.
func (uc *UseCase) Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	properties, err := uc.properties.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	month := int(now.Month())
	year := now.Year()

	summary := &domain.DashboardSummary{TotalProperties: len(properties)}
	for _, p := range payments {
		if p.Month == month && p.Year == year {
			summary.RentCollected += p.Amount
		}
	}
	for _, property := range properties {
		if !property.IsOccupied() {
			continue
		}
		summary.OccupiedProperties++
		status := Resolve(payments, *property.TenantID, property.Rent, now)
		if status.Status == domain.PaymentOverdue {
			summary.OverdueRent += status.AmountDue
		}
	}
	return summary, nil
}

func (uc *UseCase) shouldJournal(ctx context.Context, payment *domain.Payment) bool {
	if uc.journal == nil {
		return false
	}
	if err := uc.journal.BufferPayment(ctx, payment); err != nil {
		uc.logger.Error("payment not journaled", zap.String("tenant_id", payment.TenantID), zap.Error(err))
		return false
	}
	uc.logger.Warn("payment journaled for replay", zap.String("tenant_id", payment.TenantID))
	return true
}
