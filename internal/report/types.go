package report

import (
	"errors"
	"strings"
	"time"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

// Report type identifiers. Adding a report type means registering a new
// ReportConfig, not writing new rendering code.
const (
	TypeET      = "ET"      // earth-fault-loop-impedance inspection
	TypeMekanik = "MEKANIK" // mechanical checklist inspection
)

// Verdict is the compliance outcome of a report or a measurement point.
type Verdict string

const (
	VerdictCompliant    Verdict = "UYGUN"
	VerdictNonCompliant Verdict = "UYGUN DEĞİL"
)

// IsCompliant reports whether a verdict string means "pass", tolerating
// the casing and spelling variants that show up in field form data.
func IsCompliant(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "uygun", "uygundur", "compliant", "evet", "ok":
		return true
	}
	return false
}

// ParseVerdict maps a free-form form value onto a Verdict.
func ParseVerdict(s string) Verdict {
	if IsCompliant(s) {
		return VerdictCompliant
	}
	return VerdictNonCompliant
}

// FieldData is the raw payload captured by the field (saha) form.
// FormData is not interpreted by the engine except through each report
// config's own field lists.
type FieldData struct {
	FormData    map[string]any `json:"formData"`
	OlcumTarihi string         `json:"olcumTarihi"`
}

// MeasurementPoint is one computed row of an ET measurements table.
// Derived entirely from form inputs; immutable once computed.
type MeasurementPoint struct {
	Sequence            int      `json:"sira"`
	PointName           string   `json:"noktaAdi"`
	RatedCurrent        float64  `json:"in"`   // In, amps
	CurveType           string   `json:"egri"` // B, C or D
	TripCurrent         float64  `json:"ia"`   // Ia = In × curve multiplier
	MeasuredImpedance   float64  `json:"zx"`   // Zx, ohms
	LimitImpedance      float64  `json:"zs"`   // Zs, ohms
	ShortCircuitCurrent float64  `json:"ik1"`  // Ik1 = 230/Zx
	RCDRating           *float64 `json:"rcdMa,omitempty"`        // milliamps
	TripTime            *float64 `json:"acmaSuresiMs,omitempty"` // milliseconds
	Result              Verdict  `json:"sonuc"`
}

// CalculationResult is produced once per render call by a report type's
// calculation strategy and consumed read-only by the section renderers.
type CalculationResult struct {
	Measurements  []MeasurementPoint `json:"olcumler,omitempty"`
	OverallResult Verdict            `json:"genelSonuc"`
	Explanation   string             `json:"aciklama,omitempty"`
}

// Envelope is the merged data a single render call works from. It is
// assembled by the orchestrator and never mutated by renderers.
type Envelope struct {
	ReportNo        string
	ReportType      string
	Title           string
	GeneratedAt     time.Time
	MeasurementDate string

	Tenant   models.Tenant
	Customer models.Customer
	User     models.User

	// Values holds the raw form data plus orchestrator-derived entries,
	// keyed the way the section specs reference them.
	Values map[string]any

	Calc        *CalculationResult
	Overall     Verdict
	Explanation string
}

// Result is what Generate returns to the caller.
type Result struct {
	Success  bool    `json:"success"`
	ReportNo string  `json:"reportNo"`
	Sonuc    Verdict `json:"sonuc"`
	PDFPath  string  `json:"pdfPath"`
	PDFURL   string  `json:"pdfUrl"`
	Filename string  `json:"filename"`
}

// Error taxonomy. Callers match with errors.Is.
var (
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrConfigNotFound        = errors.New("report config not found")
	ErrVerdictMissing        = errors.New("genel sonuc missing from form data")
	ErrRender                = errors.New("report render failed")
	ErrPersistence           = errors.New("report persistence failed")
)
