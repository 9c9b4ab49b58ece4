package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote represents a price quote (teklif) issued to a customer
type Quote struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	CustomerID   uuid.UUID  `json:"customer_id" db:"customer_id"`
	QuoteNo      string     `json:"quote_no" db:"quote_no"` // TKF-{year}-{seq}
	Status       string     `json:"status" db:"status"`
	Subtotal     float64    `json:"subtotal" db:"subtotal"`
	DiscountRate float64    `json:"discount_rate" db:"discount_rate"` // percent
	VATRate      float64    `json:"vat_rate" db:"vat_rate"`           // percent (KDV)
	Total        float64    `json:"total" db:"total"`
	ValidUntil   *time.Time `json:"valid_until,omitempty" db:"valid_until"`
	CreatedBy    uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	Items []QuoteItem `json:"items" db:"-"`
}

// QuoteItem is a single line of a quote
type QuoteItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	QuoteID     uuid.UUID `json:"quote_id" db:"quote_id"`
	Description string    `json:"description" db:"description"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	LineTotal   float64   `json:"line_total" db:"line_total"`
}

// Quote statuses.
const (
	QuoteDraft    = "draft"
	QuoteSent     = "sent"
	QuoteAccepted = "accepted"
	QuoteRejected = "rejected"
)
