package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/models"
)

func testWorkOrder() *models.WorkOrder {
	tenantID := uuid.New()
	return &models.WorkOrder{
		ID:       uuid.New(),
		TenantID: tenantID,
		OrderNo:  42,
		Status:   models.WorkOrderInField,
		Customer: &models.Customer{
			ID:          uuid.New(),
			TenantID:    tenantID,
			Name:        "Örnek Sanayi A.Ş.",
			Address:     "OSB 4. Cadde No:12, Ankara",
			Phone:       "+90 312 555 0000",
			ContactName: "Ayşe Yılmaz",
		},
		Tenant: &models.Tenant{
			ID:      tenantID,
			Name:    "Kalibre Teknik Muayene Ltd.",
			Address: "İvedik OSB, Ankara",
		},
	}
}

func testGenerator(t *testing.T, policy config.MissingVerdictPolicy) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	g := NewGenerator(NewRegistry(), NewEngine("testdata/no-such-fonts", "testdata/no-such-assets"), dir, policy)
	g.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	}
	return g, dir
}

func TestGenerateUnsupportedType(t *testing.T) {
	g, dir := testGenerator(t, config.PolicyCompliant)

	_, err := g.Generate("XYZ", testWorkOrder(), FieldData{FormData: map[string]any{}}, nil)
	assert.True(t, errors.Is(err, ErrUnsupportedReportType))

	// Rejected before any I/O: storage stays untouched.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateMissingWorkOrderData(t *testing.T) {
	g, _ := testGenerator(t, config.PolicyCompliant)

	_, err := g.Generate(TypeET, nil, FieldData{}, nil)
	assert.Error(t, err)

	wo := testWorkOrder()
	wo.Customer = nil
	_, err = g.Generate(TypeET, wo, FieldData{}, nil)
	assert.Error(t, err)
}

func TestGenerateET(t *testing.T) {
	g, dir := testGenerator(t, config.PolicyCompliant)
	wo := testWorkOrder()

	fd := FieldData{
		FormData:    etForm(2),
		OlcumTarihi: "12.03.2026",
	}
	user := &models.User{ID: uuid.New(), Name: "Mehmet Demir", Title: "Elektrik Mühendisi"}

	res, err := g.Generate(TypeET, wo, fd, user)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "ET-2026-0042", res.ReportNo)
	assert.Equal(t, VerdictCompliant, res.Sonuc)

	wantFilename := "ET-42-" + "1773484200000" + ".pdf" // fixed clock, millis
	assert.Equal(t, wantFilename, res.Filename)
	assert.Equal(t, filepath.Join(dir, wo.TenantID.String(), wantFilename), res.PDFPath)
	assert.Equal(t, "/api/reports/download/"+wo.TenantID.String()+"/"+wantFilename, res.PDFURL)

	data, err := os.ReadFile(res.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateETNonCompliant(t *testing.T) {
	g, _ := testGenerator(t, config.PolicyCompliant)

	form := etForm(1)
	rows := form["olcumNoktalari"].([]any)
	rows[0].(map[string]any)["zx"] = 5.0 // above the 0.625 ohm limit

	res, err := g.Generate(TypeET, testWorkOrder(), FieldData{FormData: form}, nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictNonCompliant, res.Sonuc)
}

func TestGenerateMekanikVerdictPolicy(t *testing.T) {
	t.Run("explicit verdict wins", func(t *testing.T) {
		g, _ := testGenerator(t, config.PolicyCompliant)
		fd := FieldData{FormData: map[string]any{"genelSonuc": "uygun değil"}}
		res, err := g.Generate(TypeMekanik, testWorkOrder(), fd, nil)
		require.NoError(t, err)
		assert.Equal(t, VerdictNonCompliant, res.Sonuc)
	})

	t.Run("missing verdict defaults to compliant", func(t *testing.T) {
		g, _ := testGenerator(t, config.PolicyCompliant)
		res, err := g.Generate(TypeMekanik, testWorkOrder(), FieldData{FormData: map[string]any{}}, nil)
		require.NoError(t, err)
		assert.Equal(t, VerdictCompliant, res.Sonuc)
	})

	t.Run("noncompliant policy", func(t *testing.T) {
		g, _ := testGenerator(t, config.PolicyNonCompliant)
		res, err := g.Generate(TypeMekanik, testWorkOrder(), FieldData{FormData: map[string]any{}}, nil)
		require.NoError(t, err)
		assert.Equal(t, VerdictNonCompliant, res.Sonuc)
	})

	t.Run("reject policy refuses the report", func(t *testing.T) {
		g, dir := testGenerator(t, config.PolicyReject)
		_, err := g.Generate(TypeMekanik, testWorkOrder(), FieldData{FormData: map[string]any{}}, nil)
		assert.True(t, errors.Is(err, ErrVerdictMissing))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestReportNo(t *testing.T) {
	assert.Equal(t, "ET-2026-0042", ReportNo(TypeET, 2026, 42))
	assert.Equal(t, "MEKANIK-2025-0007", ReportNo(TypeMekanik, 2025, 7))
	assert.Equal(t, "ET-2026-12345", ReportNo(TypeET, 2026, 12345))
}

func TestGeneratorTypes(t *testing.T) {
	g, _ := testGenerator(t, config.PolicyCompliant)
	assert.Equal(t, []string{TypeET, TypeMekanik}, g.Types())
}
