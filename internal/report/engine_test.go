package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

func testEnvelope(cfg ReportConfig, formData map[string]any) *Envelope {
	values := make(map[string]any, len(formData)+5)
	for k, v := range formData {
		values[k] = v
	}
	values["musteriAdi"] = "Örnek Sanayi A.Ş."
	values["musteriYetkili"] = "Ayşe Yılmaz"
	values["musteriAdres"] = "Organize Sanayi Bölgesi 4. Cadde No:12, Ankara"
	values["musteriTelefon"] = "+90 312 555 0000"

	return &Envelope{
		ReportNo:        ReportNo(cfg.ReportType, 2026, 42),
		ReportType:      cfg.ReportType,
		Title:           cfg.Title,
		GeneratedAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		MeasurementDate: "12.03.2026",
		Tenant: models.Tenant{
			ID:              uuid.New(),
			Name:            "Kalibre Teknik Muayene Ltd.",
			Address:         "İvedik OSB, Ankara",
			Phone:           "+90 312 444 0000",
			Email:           "info@kalibre.example",
			AccreditationNo: "AB-0042-M",
		},
		Customer: models.Customer{
			Name:        "Örnek Sanayi A.Ş.",
			ContactName: "Ayşe Yılmaz",
		},
		User: models.User{
			ID:    uuid.New(),
			Name:  "Mehmet Demir",
			Title: "Elektrik Mühendisi",
		},
		Values: values,
	}
}

func etForm(points int) map[string]any {
	rows := make([]any, points)
	for i := range rows {
		rows[i] = map[string]any{
			"noktaAdi":   fmt.Sprintf("Pano %d", i+1),
			"sigortaIn":  float64(16),
			"egriTipi":   "B",
			"zx":         0.4,
			"sebekeTipi": "TT",
		}
	}
	return map[string]any{"olcumNoktalari": rows}
}

func TestEngineRender(t *testing.T) {
	// Nonexistent font dir exercises the Helvetica fallback; rendering
	// must still succeed.
	engine := NewEngine("testdata/no-such-fonts", "testdata/no-such-assets")
	registry := NewRegistry()

	t.Run("produces a PDF document", func(t *testing.T) {
		cfg, err := registry.Get(TypeET)
		require.NoError(t, err)

		form := etForm(3)
		env := testEnvelope(cfg, form)
		calc := etCalculate(form)
		env.Calc = &calc
		env.Overall = calc.OverallResult
		env.Explanation = calc.Explanation

		pdfBytes, err := engine.Render(cfg, env)
		require.NoError(t, err)
		assert.Greater(t, len(pdfBytes), 1000)
		assert.Equal(t, "%PDF", string(pdfBytes[:4]))
	})

	t.Run("small report fits one page", func(t *testing.T) {
		cfg, err := registry.Get(TypeET)
		require.NoError(t, err)

		form := etForm(3)
		env := testEnvelope(cfg, form)
		calc := etCalculate(form)
		env.Calc = &calc
		env.Overall = calc.OverallResult

		doc, err := engine.renderDoc(cfg, env)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.PageCount())
	})

	t.Run("long measurement table breaks onto further pages", func(t *testing.T) {
		cfg, err := registry.Get(TypeET)
		require.NoError(t, err)

		form := etForm(80)
		env := testEnvelope(cfg, form)
		calc := etCalculate(form)
		env.Calc = &calc
		env.Overall = calc.OverallResult

		doc, err := engine.renderDoc(cfg, env)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, doc.PageCount(), 2)
	})

	t.Run("checklist report renders without a calculation", func(t *testing.T) {
		cfg, err := registry.Get(TypeMekanik)
		require.NoError(t, err)

		env := testEnvelope(cfg, map[string]any{
			"genelGorunum":  "uygun",
			"etiketKontrol": "uygun değil",
			"eksiklikler":   []any{"Etiket eksik", "Koruma kapağı gevşek"},
		})
		env.Overall = VerdictNonCompliant

		pdfBytes, err := engine.Render(cfg, env)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(pdfBytes[:4]))
	})

	t.Run("defect list as free text", func(t *testing.T) {
		cfg, err := registry.Get(TypeMekanik)
		require.NoError(t, err)

		env := testEnvelope(cfg, map[string]any{
			"eksiklikler": "Gövde topraklaması ölçülemedi, pano kapağı kilitli.",
		})
		env.Overall = VerdictCompliant

		_, err = engine.Render(cfg, env)
		require.NoError(t, err)
	})

	t.Run("empty form data still renders", func(t *testing.T) {
		cfg, err := registry.Get(TypeET)
		require.NoError(t, err)

		env := testEnvelope(cfg, map[string]any{})
		calc := etCalculate(map[string]any{})
		env.Calc = &calc
		env.Overall = calc.OverallResult

		_, err = engine.Render(cfg, env)
		require.NoError(t, err)
	})
}
