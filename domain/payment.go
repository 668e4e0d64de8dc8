package domain

import "time"

// PaymentStatus is the derived rent state for a tenant.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentDue     PaymentStatus = "Due"
	PaymentOverdue PaymentStatus = "Overdue"
)

// Payment is an append-only record of rent received. Month and Year are
// extracted from Date at creation time so status lookups can match on exact
// calendar month without range scans.
type Payment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TenantID   string    `json:"tenant_id"`
	PropertyID string    `json:"property_id"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}

// RentStatus is the result of resolving a tenant's current rent position.
type RentStatus struct {
	Status    PaymentStatus `json:"status"`
	AmountDue float64       `json:"amount_due"`
}

// DashboardSummary aggregates the portfolio for the landlord's overview.
type DashboardSummary struct {
	TotalProperties    int     `json:"total_properties"`
	OccupiedProperties int     `json:"occupied_properties"`
	RentCollected      float64 `json:"rent_collected"`
	OverdueRent        float64 `json:"overdue_rent"`
}
