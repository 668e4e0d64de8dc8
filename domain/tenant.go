package domain

import "time"

// Tenant represents a renter tracked by a landlord account. PropertyID is set
// iff the tenant is assigned to a property; the referenced property then
// carries the matching back-reference. A tenant occupies at most one property.
type Tenant struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	MoveInDate time.Time `json:"move_in_date"`
	PropertyID *string   `json:"property_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (t *Tenant) IsAssigned() bool {
	return t != nil && t.PropertyID != nil
}
