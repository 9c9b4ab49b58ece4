package quote

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/models"
)

// Service computes quote line and document totals
type Service struct {
	defaultVATRate float64
}

// NewService creates a new quote service
func NewService(cfg *config.Config) *Service {
	return &Service{defaultVATRate: cfg.QuoteVATRate}
}

// Build assembles a quote from line items, computing line totals,
// subtotal, discount and KDV. Amounts are rounded to kuruş (2 decimals).
func (s *Service) Build(tenantID, customerID, createdBy uuid.UUID, items []models.QuoteItem, discountRate float64, validUntil *time.Time) (*models.Quote, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("quote has no items")
	}
	if discountRate < 0 || discountRate > 100 {
		return nil, fmt.Errorf("discount rate %.1f out of range", discountRate)
	}

	now := time.Now()
	quote := &models.Quote{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CustomerID:   customerID,
		Status:       models.QuoteDraft,
		DiscountRate: discountRate,
		VATRate:      s.defaultVATRate,
		ValidUntil:   validUntil,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var subtotal float64
	for i := range items {
		items[i].ID = uuid.New()
		items[i].QuoteID = quote.ID
		items[i].LineTotal = round2(items[i].Quantity * items[i].UnitPrice)
		subtotal += items[i].LineTotal
	}
	quote.Items = items
	quote.Subtotal = round2(subtotal)

	discounted := quote.Subtotal * (1 - discountRate/100)
	quote.Total = round2(discounted * (1 + quote.VATRate/100))

	return quote, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
