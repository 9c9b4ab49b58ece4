package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

// WorkOrderRepository handles work order database operations
type WorkOrderRepository struct {
	db *sql.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Create inserts a work order, allocating the tenant-scoped order number
// inside the same transaction.
func (r *WorkOrderRepository) Create(ctx context.Context, wo *models.WorkOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_no), 0) + 1 FROM work_orders WHERE tenant_id = $1",
		wo.TenantID,
	).Scan(&wo.OrderNo)
	if err != nil {
		return fmt.Errorf("failed to allocate order number: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO work_orders (id, tenant_id, customer_id, order_no, status, location, scheduled_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		wo.ID, wo.TenantID, wo.CustomerID, wo.OrderNo, wo.Status, wo.Location,
		wo.ScheduledAt, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert work order: %w", err)
	}

	return tx.Commit()
}

// GetByID retrieves a work order with its customer and tenant joined in,
// which is the shape the report orchestrator consumes.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	var customer models.Customer
	var tenant models.Tenant

	err := r.db.QueryRowContext(ctx,
		`SELECT w.id, w.tenant_id, w.customer_id, w.order_no, w.status, w.location, w.scheduled_at, w.created_at, w.updated_at,
		        c.id, c.tenant_id, c.name, c.address, c.phone, c.email, c.tax_no, c.contact_name, c.created_at, c.updated_at,
		        t.id, t.name, t.address, t.phone, t.email, t.tax_no, t.accreditation_no, t.logo_path, t.created_at, t.updated_at
		 FROM work_orders w
		 JOIN customers c ON c.id = w.customer_id
		 JOIN tenants t ON t.id = w.tenant_id
		 WHERE w.id = $1`,
		id,
	).Scan(&wo.ID, &wo.TenantID, &wo.CustomerID, &wo.OrderNo, &wo.Status, &wo.Location,
		&wo.ScheduledAt, &wo.CreatedAt, &wo.UpdatedAt,
		&customer.ID, &customer.TenantID, &customer.Name, &customer.Address, &customer.Phone,
		&customer.Email, &customer.TaxNo, &customer.ContactName, &customer.CreatedAt, &customer.UpdatedAt,
		&tenant.ID, &tenant.Name, &tenant.Address, &tenant.Phone, &tenant.Email,
		&tenant.TaxNo, &tenant.AccreditationNo, &tenant.LogoPath, &tenant.CreatedAt, &tenant.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}

	wo.Customer = &customer
	wo.Tenant = &tenant
	return &wo, nil
}

// ListByTenant retrieves a tenant's work orders, newest first
func (r *WorkOrderRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, customer_id, order_no, status, location, scheduled_at, created_at, updated_at
		 FROM work_orders WHERE tenant_id = $1 ORDER BY order_no DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var orders []models.WorkOrder
	for rows.Next() {
		var wo models.WorkOrder
		err := rows.Scan(&wo.ID, &wo.TenantID, &wo.CustomerID, &wo.OrderNo, &wo.Status,
			&wo.Location, &wo.ScheduledAt, &wo.CreatedAt, &wo.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		orders = append(orders, wo)
	}

	return orders, rows.Err()
}

// UpdateStatus moves a work order through its lifecycle
func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE work_orders SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	return err
}
