package models

import (
	"time"

	"github.com/google/uuid"
)

// Report represents the metadata row of a generated inspection report.
// The PDF itself lives on disk under the tenant's storage directory.
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	WorkOrderID uuid.UUID `json:"work_order_id" db:"work_order_id"`
	ReportNo    string    `json:"report_no" db:"report_no"`
	ReportType  string    `json:"report_type" db:"report_type"`
	Sonuc       string    `json:"sonuc" db:"sonuc"`
	Filename    string    `json:"filename" db:"filename"`
	PDFPath     string    `json:"pdf_path" db:"pdf_path"`
	PDFURL      string    `json:"pdf_url" db:"pdf_url"`
	GeneratedBy uuid.UUID `json:"generated_by" db:"generated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
