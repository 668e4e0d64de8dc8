package rentbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

const exportHeader = "Date,Tenant Name,Tenant Email,Tenant Phone,Property,Amount (₹)"

// Export is a rendered CSV download: the file body plus the name the client
// should save it under.
type Export struct {
	Filename string
	Content  []byte
}

// ExportCSV renders the payment history as CSV, optionally filtered to one
// tenant. Every field is double-quoted with embedded quotes doubled; missing
// tenant or property lookups render as N/A.
func (uc *UseCase) ExportCSV(ctx context.Context, userID, tenantID string) (*Export, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	payments, err := uc.payments.List(ctx, repository.PaymentFilter{UserID: userID, TenantID: tenantID})
	if err != nil {
		return nil, err
	}
	tenants, err := uc.tenants.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	properties, err := uc.properties.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	tenantsByID := make(map[string]domain.Tenant, len(tenants))
	for _, t := range tenants {
		tenantsByID[t.ID] = t
	}
	addressByID := make(map[string]string, len(properties))
	for _, p := range properties {
		addressByID[p.ID] = p.Address
	}

	var b strings.Builder
	b.WriteString(exportHeader)
	for _, p := range payments {
		name, email, phone := "N/A", "N/A", "N/A"
		if t, ok := tenantsByID[p.TenantID]; ok {
			name, email, phone = orNA(t.Name), orNA(t.Email), orNA(t.Phone)
		}
		address := "N/A"
		if a, ok := addressByID[p.PropertyID]; ok {
			address = orNA(a)
		}

		fields := []string{
			p.Date.Format("2006-01-02"),
			name,
			email,
			phone,
			address,
			strconv.FormatFloat(p.Amount, 'f', -1, 64),
		}
		for i, f := range fields {
			fields[i] = escapeCSV(f)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}

	return &Export{
		Filename: exportFilename(tenantID, tenantsByID),
		Content:  []byte(b.String()),
	}, nil
}

func exportFilename(tenantID string, tenantsByID map[string]domain.Tenant) string {
	if tenantID == "" {
		return "rent_payments_all.csv"
	}
	name := "tenant"
	if t, ok := tenantsByID[tenantID]; ok && t.Name != "" {
		name = strings.ReplaceAll(t.Name, " ", "_")
	}
	return fmt.Sprintf("rent_payments_%s.csv", name)
}

func escapeCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func orNA(field string) string {
	if field == "" {
		return "N/A"
	}
	return field
}
