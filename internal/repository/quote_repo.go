package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

// QuoteRepository handles quote database operations
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// NextSequence returns the next quote sequence number for a tenant and
// year. Must run inside Create's transaction to avoid duplicate numbers.
func nextQuoteSequence(ctx context.Context, tx *sql.Tx, tenantID uuid.UUID, year int) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM (
		   SELECT CAST(SPLIT_PART(quote_no, '-', 3) AS BIGINT) AS seq
		   FROM quotes WHERE tenant_id = $1 AND quote_no LIKE $2
		 ) s`,
		tenantID, fmt.Sprintf("TKF-%d-%%", year),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate quote number: %w", err)
	}
	return seq, nil
}

// Create inserts a quote and its items, allocating the quote number
// transactionally.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	year := quote.CreatedAt.Year()
	seq, err := nextQuoteSequence(ctx, tx, quote.TenantID, year)
	if err != nil {
		return err
	}
	quote.QuoteNo = fmt.Sprintf("TKF-%d-%04d", year, seq)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quotes (id, tenant_id, customer_id, quote_no, status, subtotal, discount_rate, vat_rate, total, valid_until, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		quote.ID, quote.TenantID, quote.CustomerID, quote.QuoteNo, quote.Status,
		quote.Subtotal, quote.DiscountRate, quote.VATRate, quote.Total,
		quote.ValidUntil, quote.CreatedBy, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	for _, item := range quote.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quote_items (id, quote_id, description, quantity, unit_price, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, quote.ID, item.Description, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quote item: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a quote with its items
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, customer_id, quote_no, status, subtotal, discount_rate, vat_rate, total, valid_until, created_by, created_at, updated_at, deleted_at
		 FROM quotes WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&quote.ID, &quote.TenantID, &quote.CustomerID, &quote.QuoteNo, &quote.Status,
		&quote.Subtotal, &quote.DiscountRate, &quote.VATRate, &quote.Total,
		&quote.ValidUntil, &quote.CreatedBy, &quote.CreatedAt, &quote.UpdatedAt, &quote.DeletedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quote_id, description, quantity, unit_price, line_total
		 FROM quote_items WHERE quote_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.QuoteItem
		err := rows.Scan(&item.ID, &item.QuoteID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		quote.Items = append(quote.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &quote, nil
}

// ListByTenant retrieves a tenant's quotes, newest first
func (r *QuoteRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, customer_id, quote_no, status, subtotal, discount_rate, vat_rate, total, valid_until, created_by, created_at, updated_at, deleted_at
		 FROM quotes WHERE tenant_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var quote models.Quote
		err := rows.Scan(&quote.ID, &quote.TenantID, &quote.CustomerID, &quote.QuoteNo,
			&quote.Status, &quote.Subtotal, &quote.DiscountRate, &quote.VATRate,
			&quote.Total, &quote.ValidUntil, &quote.CreatedBy, &quote.CreatedAt,
			&quote.UpdatedAt, &quote.DeletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}

// UpdateStatus updates a quote's status
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE quotes SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	return err
}

// Delete soft deletes a quote
func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		"UPDATE quotes SET deleted_at = $1 WHERE id = $2",
		now, id,
	)
	return err
}
