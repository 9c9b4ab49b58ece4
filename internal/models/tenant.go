package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an inspection company operating on the platform
type Tenant struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Address         string    `json:"address" db:"address"`
	Phone           string    `json:"phone" db:"phone"`
	Email           string    `json:"email" db:"email"`
	TaxNo           string    `json:"tax_no" db:"tax_no"`
	AccreditationNo string    `json:"accreditation_no" db:"accreditation_no"`
	LogoPath        string    `json:"logo_path" db:"logo_path"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Customer represents a customer of a tenant
type Customer struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email" db:"email"`
	TaxNo       string    `json:"tax_no" db:"tax_no"`
	ContactName string    `json:"contact_name" db:"contact_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
