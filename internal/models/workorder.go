package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkOrder represents a scheduled inspection job (iş emri)
type WorkOrder struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	CustomerID  uuid.UUID  `json:"customer_id" db:"customer_id"`
	OrderNo     int64      `json:"order_no" db:"order_no"` // tenant-scoped sequence
	Status      string     `json:"status" db:"status"`
	Location    string     `json:"location" db:"location"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Joined rows, populated by the repository
	Customer *Customer `json:"customer,omitempty" db:"-"`
	Tenant   *Tenant   `json:"tenant,omitempty" db:"-"`
}

// Work order statuses.
const (
	WorkOrderScheduled = "scheduled"
	WorkOrderInField   = "in_field"
	WorkOrderReported  = "reported"
	WorkOrderClosed    = "closed"
)
