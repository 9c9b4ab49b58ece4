package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// Font files looked for under the configured font directory. DejaVu
// covers the full Turkish character set; when absent the engine degrades
// to the built-in Helvetica core font instead of failing the render.
const (
	fontFileRegular = "DejaVuSans.ttf"
	fontFileBold    = "DejaVuSans-Bold.ttf"
	fontFamily      = "rapor"
)

// Engine renders a report config plus data envelope into PDF bytes. It
// never touches storage; persistence belongs to the orchestrator. One
// Engine is safe for concurrent use: each Render call builds its own
// document.
type Engine struct {
	fontDir  string
	assetDir string
}

// NewEngine creates a PDF engine reading fonts and image assets from the
// given directories.
func NewEngine(fontDir, assetDir string) *Engine {
	return &Engine{fontDir: fontDir, assetDir: assetDir}
}

// Render produces the finished PDF for one report.
func (e *Engine) Render(cfg ReportConfig, env *Envelope) ([]byte, error) {
	doc, err := e.renderDoc(cfg, env)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// renderDoc builds the document; split from Render so tests can inspect
// page counts before serialization.
func (e *Engine) renderDoc(cfg ReportConfig, env *Envelope) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0) // renderers manage their own breaks

	p := &painter{pdf: pdf}
	e.loadFont(p)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont(p.font, "", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentWidth, 5, p.tr(fmt.Sprintf("%s  •  Sayfa %d/{nb}", env.ReportNo, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	y := e.renderHeader(p, env)
	y = e.renderTitle(p, y, cfg.Title)
	y = e.renderMetadata(p, y, env)
	y = e.renderCustomer(p, y, env) + sectionGap

	for _, spec := range cfg.Sections {
		y = p.renderSection(y, spec, env) + sectionGap
	}

	e.renderSignatures(p, y, env)

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}
	return pdf, nil
}

// loadFont wires the UTF-8 font when present; otherwise falls back to the
// core Helvetica with a charset translator. Font trouble degrades
// character coverage, it never fails a render.
func (e *Engine) loadFont(p *painter) {
	regular := filepath.Join(e.fontDir, fontFileRegular)
	bold := filepath.Join(e.fontDir, fontFileBold)

	if fileExists(regular) && fileExists(bold) {
		p.pdf.AddUTF8Font(fontFamily, "", regular)
		p.pdf.AddUTF8Font(fontFamily, "B", bold)
		if !p.pdf.Err() {
			p.font = fontFamily
			p.tr = func(s string) string { return s }
			return
		}
		// A corrupt font file poisons the whole document; start over on
		// the core font.
		p.pdf.ClearError()
	}
	p.font = "Helvetica"
	p.tr = p.pdf.UnicodeTranslatorFromDescriptor("")
}

// renderHeader draws the issuer identity block: logo, company lines and
// the accreditation mark. A missing logo is skipped silently.
func (e *Engine) renderHeader(p *painter, env *Envelope) float64 {
	pdf := p.pdf
	y := marginTop

	textX := marginLeft
	if env.Tenant.LogoPath != "" {
		logo := filepath.Join(e.assetDir, env.Tenant.LogoPath)
		if fileExists(logo) {
			pdf.ImageOptions(logo, marginLeft, y, 24, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			textX = marginLeft + 28
		}
	}

	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont(p.font, "B", 12)
	pdf.SetXY(textX, y)
	pdf.CellFormat(contentWidth-(textX-marginLeft)-45, 6, p.tr(env.Tenant.Name), "", 0, "L", false, 0, "")

	pdf.SetFont(p.font, "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(textX, y+6)
	pdf.CellFormat(contentWidth-(textX-marginLeft)-45, 4, p.tr(env.Tenant.Address), "", 0, "L", false, 0, "")
	pdf.SetXY(textX, y+10)
	pdf.CellFormat(contentWidth-(textX-marginLeft)-45, 4, p.tr(env.Tenant.Phone+"  "+env.Tenant.Email), "", 0, "L", false, 0, "")

	if env.Tenant.AccreditationNo != "" {
		pdf.SetFont(p.font, "B", 8)
		pdf.SetXY(marginLeft+contentWidth-45, y)
		pdf.CellFormat(45, 4, p.tr("Akreditasyon No"), "", 0, "R", false, 0, "")
		pdf.SetFont(p.font, "", 8)
		pdf.SetXY(marginLeft+contentWidth-45, y+4)
		pdf.CellFormat(45, 4, p.tr(env.Tenant.AccreditationNo), "", 0, "R", false, 0, "")
	}

	y += 16
	pdf.SetDrawColor(55, 71, 90)
	pdf.Line(marginLeft, y, marginLeft+contentWidth, y)
	return y + 3
}

func (e *Engine) renderTitle(p *painter, y float64, title string) float64 {
	p.setFill(colorHeader)
	p.pdf.SetTextColor(255, 255, 255)
	p.pdf.SetFont(p.font, "B", 12)
	p.pdf.SetXY(marginLeft, y)
	p.pdf.CellFormat(contentWidth, 10, p.tr(title), "", 0, "C", true, 0, "")
	return y + 10 + 3
}

func (e *Engine) renderMetadata(p *painter, y float64, env *Envelope) float64 {
	const rowH = 7.0
	third := contentWidth / 3
	cells := []struct{ label, value string }{
		{"Rapor No", env.ReportNo},
		{"Rapor Tarihi", env.GeneratedAt.Format("02.01.2006")},
		{"Ölçüm Tarihi", env.MeasurementDate},
	}
	p.pdf.SetXY(marginLeft, y)
	for _, c := range cells {
		p.pdf.SetFont(p.font, "B", 8)
		p.setFill(colorTitle)
		p.pdf.CellFormat(third*0.45, rowH, p.tr(c.label), "1", 0, "L", true, 0, "")
		p.pdf.SetFont(p.font, "", 9)
		p.pdf.SetTextColor(33, 37, 41)
		p.pdf.CellFormat(third*0.55, rowH, p.tr(c.value), "1", 0, "L", false, 0, "")
	}
	return y + rowH + 3
}

func (e *Engine) renderCustomer(p *painter, y float64, env *Envelope) float64 {
	spec := SectionSpec{
		Type:  SectionInfo,
		Title: "Müşteri Bilgileri",
		Fields: []Field{
			{Key: "musteriAdi", Label: "Firma Adı"},
			{Key: "musteriYetkili", Label: "Yetkili"},
			{Key: "musteriAdres", Label: "Adres"},
			{Key: "musteriTelefon", Label: "Telefon"},
		},
	}
	return p.renderInfo(y, spec, env)
}

// renderSignatures draws the closing signature block, forcing a page
// break first when insufficient room remains.
func (e *Engine) renderSignatures(p *painter, y float64, env *Envelope) {
	pdf := p.pdf
	y = p.ensure(y, signatureHeight)
	y += 4

	half := contentWidth / 2
	boxH := signatureHeight - 8

	draw := func(x float64, role, name, title string, sigPath string) {
		pdf.SetDrawColor(160, 160, 160)
		pdf.Rect(x, y, half-4, boxH, "D")
		pdf.SetFont(p.font, "B", 9)
		pdf.SetTextColor(33, 37, 41)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(half-4, 5, p.tr(role), "", 0, "C", false, 0, "")
		pdf.SetFont(p.font, "", 9)
		pdf.SetXY(x, y+8)
		pdf.CellFormat(half-4, 5, p.tr(name), "", 0, "C", false, 0, "")
		pdf.SetFont(p.font, "", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(x, y+13)
		pdf.CellFormat(half-4, 4, p.tr(title), "", 0, "C", false, 0, "")
		if sigPath != "" && fileExists(sigPath) {
			pdf.ImageOptions(sigPath, x+(half-4)/2-12, y+boxH-18, 24, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	sig := filepath.Join(e.assetDir, "signatures", env.User.ID.String()+".png")
	draw(marginLeft, "Kontrolü Yapan", env.User.Name, env.User.Title, sig)
	draw(marginLeft+half+4, "Firma Yetkilisi", env.Customer.ContactName, "", "")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
