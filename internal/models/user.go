package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an inspection personnel account
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Title        string     `json:"title" db:"title"` // e.g. "Elektrik Mühendisi"
	Role         string     `json:"role" db:"role"`   // admin, inspector, sales
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// Roles recognized by the auth layer.
const (
	RoleAdmin     = "admin"
	RoleInspector = "inspector"
	RoleSales     = "sales"
)
