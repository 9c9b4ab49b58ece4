package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/models"
)

// Generator is the report orchestrator: it validates the report type,
// runs the type's calculation, renders the PDF and persists it under the
// tenant's storage directory. It holds no per-call state, so one
// Generator serves concurrent requests.
type Generator struct {
	registry *Registry
	engine   *Engine
	rootDir  string
	policy   config.MissingVerdictPolicy

	now func() time.Time
}

// NewGenerator wires the orchestrator.
func NewGenerator(registry *Registry, engine *Engine, rootDir string, policy config.MissingVerdictPolicy) *Generator {
	return &Generator{
		registry: registry,
		engine:   engine,
		rootDir:  rootDir,
		policy:   policy,
		now:      time.Now,
	}
}

// Generate produces, persists and describes one report. No file I/O
// happens before the report type is validated. A failed disk write loses
// the generated bytes; the caller retries the whole call.
func (g *Generator) Generate(reportType string, workOrder *models.WorkOrder, fieldData FieldData, user *models.User) (*Result, error) {
	if !g.registry.Supported(reportType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReportType, reportType)
	}
	cfg, err := g.registry.Get(reportType)
	if err != nil {
		return nil, err
	}
	if workOrder == nil || workOrder.Customer == nil || workOrder.Tenant == nil {
		return nil, fmt.Errorf("work order missing customer or tenant")
	}

	now := g.now()
	env := g.buildEnvelope(cfg, workOrder, fieldData, user, now)

	if cfg.Calculate != nil {
		calc := cfg.Calculate(fieldData.FormData)
		env.Calc = &calc
		env.Overall = calc.OverallResult
		env.Explanation = calc.Explanation
	} else {
		overall, err := g.resolveVerdict(fieldData.FormData)
		if err != nil {
			return nil, err
		}
		env.Overall = overall
	}

	pdfBytes, err := g.engine.Render(cfg, env)
	if err != nil {
		return nil, err
	}

	tenantID := workOrder.TenantID.String()
	filename := fmt.Sprintf("%s-%d-%d.pdf", reportType, workOrder.OrderNo, now.UnixMilli())
	dir := filepath.Join(g.rootDir, tenantID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &Result{
		Success:  true,
		ReportNo: env.ReportNo,
		Sonuc:    env.Overall,
		PDFPath:  path,
		PDFURL:   fmt.Sprintf("/api/reports/download/%s/%s", tenantID, filename),
		Filename: filename,
	}, nil
}

// resolveVerdict applies the missing-verdict policy for calculation-free
// report types.
func (g *Generator) resolveVerdict(formData map[string]any) (Verdict, error) {
	if v := toString(formData[keyOverallVerdict]); v != "" {
		return ParseVerdict(v), nil
	}
	switch g.policy {
	case config.PolicyNonCompliant:
		return VerdictNonCompliant, nil
	case config.PolicyReject:
		return "", ErrVerdictMissing
	default:
		return VerdictCompliant, nil
	}
}

// buildEnvelope merges work order, customer, tenant, user and form data
// into the single read-only structure the renderers consume.
func (g *Generator) buildEnvelope(cfg ReportConfig, wo *models.WorkOrder, fd FieldData, user *models.User, now time.Time) *Envelope {
	values := make(map[string]any, len(fd.FormData)+8)
	for k, v := range fd.FormData {
		values[k] = v
	}
	values["musteriAdi"] = wo.Customer.Name
	values["musteriAdres"] = wo.Customer.Address
	values["musteriTelefon"] = wo.Customer.Phone
	values["musteriYetkili"] = wo.Customer.ContactName
	values["isEmriNo"] = wo.OrderNo

	env := &Envelope{
		ReportNo:        ReportNo(cfg.ReportType, now.Year(), wo.OrderNo),
		ReportType:      cfg.ReportType,
		Title:           cfg.Title,
		GeneratedAt:     now,
		MeasurementDate: fd.OlcumTarihi,
		Tenant:          *wo.Tenant,
		Customer:        *wo.Customer,
		Values:          values,
	}
	if user != nil {
		env.User = *user
	}
	return env
}

// Types returns the report types this generator can produce.
func (g *Generator) Types() []string {
	return g.registry.Types()
}

// ReportNo builds the deterministic report number, e.g. "ET-2026-0042".
func ReportNo(reportType string, year int, orderNo int64) string {
	return fmt.Sprintf("%s-%d-%04d", reportType, year, orderNo)
}
