package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

// ReportRepository handles report metadata database operations
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create records a generated report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (id, tenant_id, work_order_id, report_no, report_type, sonuc, filename, pdf_path, pdf_url, generated_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		report.ID, report.TenantID, report.WorkOrderID, report.ReportNo, report.ReportType,
		report.Sonuc, report.Filename, report.PDFPath, report.PDFURL, report.GeneratedBy,
		report.CreatedAt,
	)
	return err
}

// GetByFilename retrieves a report row for a tenant's file, used by the
// download handler to confirm the artifact belongs to the tenant.
func (r *ReportRepository) GetByFilename(ctx context.Context, tenantID uuid.UUID, filename string) (*models.Report, error) {
	var report models.Report
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, work_order_id, report_no, report_type, sonuc, filename, pdf_path, pdf_url, generated_by, created_at
		 FROM reports WHERE tenant_id = $1 AND filename = $2`,
		tenantID, filename,
	).Scan(&report.ID, &report.TenantID, &report.WorkOrderID, &report.ReportNo,
		&report.ReportType, &report.Sonuc, &report.Filename, &report.PDFPath,
		&report.PDFURL, &report.GeneratedBy, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

// ListByTenant retrieves a tenant's report rows, newest first
func (r *ReportRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, work_order_id, report_no, report_type, sonuc, filename, pdf_path, pdf_url, generated_by, created_at
		 FROM reports WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var report models.Report
		err := rows.Scan(&report.ID, &report.TenantID, &report.WorkOrderID, &report.ReportNo,
			&report.ReportType, &report.Sonuc, &report.Filename, &report.PDFPath,
			&report.PDFURL, &report.GeneratedBy, &report.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
